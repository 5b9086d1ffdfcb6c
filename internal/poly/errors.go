package poly

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates an empty, malformed or non-finite coefficient sequence.
var ErrInvalidInput = errors.New("poly: invalid input")

// ParseError reports the token that could not be turned into a coefficient.
type ParseError struct {
	Index  int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("poly: token %d (%q): %s", e.Index, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidInput
}
