package seeder

import (
	"errors"
	"fmt"
)

// ErrWriteFailed is the single failure kind of a seeding run
var ErrWriteFailed = errors.New("write failed")

// WriteError reports which record stopped the run
type WriteError struct {
	Phase      Phase
	Collection string
	ID         string
	Index      int
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s[%d] id=%q: %v", ErrWriteFailed, e.Collection, e.Index, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrWriteFailed) hold for every WriteError
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}
