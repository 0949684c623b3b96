package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/account/mock_repository.go -package=mock_account Repository

// Repository defines operations for managing users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	FindAll(ctx context.Context) ([]User, error)
}

// DBRepository implements Repository using MySQL or SQLite.
// Finders return nil without an error when no user matches.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) Create(ctx context.Context, user *User) error {
	if _, err := r.db.NamedExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, created_at) VALUES (:id, :username, :email, :password_hash, :created_at)",
		user,
	); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *DBRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*User, error) {
	return r.get(ctx, "SELECT * FROM users WHERE username = ? OR email = ? LIMIT 1", username, email)
}

func (r *DBRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.get(ctx, "SELECT * FROM users WHERE id = ?", id)
}

func (r *DBRepository) get(ctx context.Context, query string, args ...any) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *DBRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET last_login_at = ? WHERE id = ?", at, id); err != nil {
		return fmt.Errorf("update last login of %s: %w", id, err)
	}
	return nil
}

// FindAll returns every user, the most recently created first.
func (r *DBRepository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("load all users: %w", err)
	}
	return users, nil
}
