package account

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const (
	DefaultPasswordCost = 10
	DefaultTokenTTL     = 24 * time.Hour
)

// Claims are carried by the bearer tokens issued on login.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	repo         Repository
	secret       []byte
	tokenTTL     time.Duration
	passwordCost int
	now          func() time.Time
}

type Option func(*Service)

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.tokenTTL = ttl
	}
}

func WithPasswordCost(cost int) Option {
	return func(s *Service) {
		s.passwordCost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, secret string, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		secret:       []byte(secret),
		tokenTTL:     DefaultTokenTTL,
		passwordCost: DefaultPasswordCost,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and returns its ID.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", ErrMissingFields
	}

	existing, err := s.repo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", fmt.Errorf("repo.FindByUsernameOrEmail() > %w", err)
	}
	if existing != nil {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword() > %w", err)
	}
	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("repo.Create() > %w", err)
	}
	return user.ID, nil
}

// Login checks the password of the user identified by username or email and issues a token.
func (s *Service) Login(ctx context.Context, login, password string) (string, *User, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	user, err := s.repo.FindByUsernameOrEmail(ctx, login, login)
	if err != nil {
		return "", nil, fmt.Errorf("repo.FindByUsernameOrEmail() > %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, fmt.Errorf("repo.UpdateLastLogin() > %w", err)
	}
	user.LastLoginAt = &now

	token, err := s.issueToken(user, now)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) issueToken(user *User, now time.Time) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString() > %w", err)
	}
	return token, nil
}

// Authenticate verifies a bearer token and returns its claims.
func (s *Service) Authenticate(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByID() > %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns every user, newest first, with the admin statistics.
func (s *Service) ListUsers(ctx context.Context) ([]User, Stats, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("repo.FindAll() > %w", err)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, computeStats(users, s.now()), nil
}
