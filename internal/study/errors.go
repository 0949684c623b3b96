package study

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the parent of every error that prevents a session from starting.
var ErrConfiguration = errors.New("study: invalid configuration")

var (
	ErrNoLessonSelected = fmt.Errorf("%w: no lesson selected", ErrConfiguration)
	ErrEmptySelection   = fmt.Errorf("%w: empty selection", ErrConfiguration)
	ErrInvalidPartition = fmt.Errorf("%w: invalid partition", ErrConfiguration)
)

// ErrInvalidTransition is returned when an action is not allowed in the current phase.
// The session state is left untouched.
var ErrInvalidTransition = errors.New("study: invalid transition")
