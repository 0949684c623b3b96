package review

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/shokyuu/internal/database"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// LocalOwner owns the rows of the device-local SQLite ledger.
const LocalOwner = "local"

var reviewEntryColumns = []string{
	"owner", "lesson", "position", "source", "transliteration", "translation", "optional",
}

type reviewEntryRow struct {
	Lesson   string `db:"lesson"`
	Position int    `db:"position"`
	vocabulary.Entry
}

// SQLStore keeps one owner's ledger in the review_entries table.
type SQLStore struct {
	db    *sqlx.DB
	owner string
}

func NewSQLStore(db *sqlx.DB, owner string) *SQLStore {
	return &SQLStore{db: db, owner: owner}
}

func (s *SQLStore) Load(ctx context.Context) (Decks, error) {
	var rows []reviewEntryRow
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT lesson, position, source, transliteration, translation, optional FROM review_entries WHERE owner = ? ORDER BY lesson, position",
		s.owner,
	); err != nil {
		return nil, fmt.Errorf("load review entries of %s: %w", s.owner, err)
	}

	decks := make(Decks)
	for _, row := range rows {
		decks[row.Lesson] = append(decks[row.Lesson], row.Entry)
	}
	return decks, nil
}

// Save replaces every row of the owner in a single transaction.
func (s *SQLStore) Save(ctx context.Context, decks Decks) error {
	var args []any
	rows := 0
	for _, lesson := range decks.Lessons() {
		for position, e := range decks[lesson] {
			args = append(args, s.owner, lesson, position, e.Source, e.Transliteration, e.Translation, e.Optional)
			rows++
		}
	}

	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM review_entries WHERE owner = ?", s.owner); err != nil {
			return fmt.Errorf("delete review entries of %s: %w", s.owner, err)
		}
		if rows == 0 {
			return nil
		}
		query := database.BuildMultiRowInsert("review_entries", reviewEntryColumns, rows)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert review entries of %s: %w", s.owner, err)
		}
		return nil
	})
}
