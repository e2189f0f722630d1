package tokenizer

import (
	"errors"
	"fmt"
)

// Lexical errors. All of them are fatal to the token stream: once one is
// returned, every subsequent call to Next returns the same error.
var (
	// ErrBareQuote indicates a quote character inside an unquoted field, or
	// content between a closing quote and the next delimiter or terminator.
	ErrBareQuote = errors.New("bare quote in non-quoted field")

	// ErrUnterminatedQuote indicates the input ended inside a quoted field.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")

	// ErrTrailingEscape indicates the input ended right after an escape
	// character.
	ErrTrailingEscape = errors.New("escape at end of input")
)

// Error is a lexical error with the position where it was detected.
// Lines and columns are 1-indexed and counted in runes.
type Error struct {
	Line   int
	Column int
	Err    error
}

// Error returns a formatted message with position information.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
