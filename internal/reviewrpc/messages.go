// Package reviewrpc defines the ReviewService Connect contract used to keep a
// learner's review ledger on the server.
package reviewrpc

import "github.com/at-ishikawa/shokyuu/internal/vocabulary"

type LedgerLesson struct {
	Lesson  string             `json:"lesson" validate:"required"`
	Entries []vocabulary.Entry `json:"entries" validate:"dive"`
}

type GetLedgerRequest struct{}

type GetLedgerResponse struct {
	Lessons []LedgerLesson `json:"lessons"`
}

type SaveLedgerRequest struct {
	Lessons []LedgerLesson `json:"lessons" validate:"dive"`
}

type SaveLedgerResponse struct {
	Saved int `json:"saved"`
}
