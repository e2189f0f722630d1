package csv

import (
	"errors"
	"fmt"

	"github.com/Fati1996i/commons-csv/internal/tokenizer"
)

// Sentinel errors. Wrapper types below unwrap to these so callers can
// classify failures with errors.Is.
var (
	// ErrClosed is returned by any read on a closed parser.
	ErrClosed = errors.New("csv: parser is closed")

	// ErrDuplicateHeader indicates a header name rejected by the dialect's
	// duplicate policy.
	ErrDuplicateHeader = errors.New("duplicate header name")

	// ErrFieldCount indicates a record whose width differs from the
	// expected field count.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrBareQuote indicates a quote character inside an unquoted field, or
	// content between a closing quote and the next delimiter or terminator.
	ErrBareQuote = tokenizer.ErrBareQuote

	// ErrUnterminatedQuote indicates the input ended inside a quoted field.
	ErrUnterminatedQuote = tokenizer.ErrUnterminatedQuote

	// ErrTrailingEscape indicates the input ended right after an escape
	// character.
	ErrTrailingEscape = tokenizer.ErrTrailingEscape
)

// ParseError reports a structural error in the input with position
// information. It is fatal: the session cannot resume past a malformed
// token, and every later read returns the same error.
type ParseError struct {
	// RecordNumber is the number the record being assembled would have
	// received.
	RecordNumber int64
	// Line is the input line where the error was detected (1-indexed).
	Line int
	// Column is the rune column where the error was detected (1-indexed).
	Column int
	// Err is the underlying error, one of the lexical sentinels above or a
	// read failure from the source.
	Err error
}

// Error returns a formatted message with position information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("csv: record %d: line %d, column %d: %v", e.RecordNumber, e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldCountError reports a record whose field count does not match the
// expected width. It is non-fatal: Read returns the offending record
// alongside it, and the session stays usable.
type FieldCountError struct {
	// RecordNumber is the 1-based number of the offending record.
	RecordNumber int64
	// Expected is the width the dialect holds records to.
	Expected int
	// Got is the actual field count of the record.
	Got int
}

// Error returns a formatted message naming the record and both widths.
func (e *FieldCountError) Error() string {
	return fmt.Sprintf("csv: record %d: wrong number of fields (got %d, expected %d)", e.RecordNumber, e.Got, e.Expected)
}

// Unwrap returns ErrFieldCount.
func (e *FieldCountError) Unwrap() error {
	return ErrFieldCount
}

// DuplicateHeaderError reports a header name rejected by the dialect's
// duplicate policy. It is fatal to session construction.
type DuplicateHeaderError struct {
	// Name is the repeated header name.
	Name string
	// Columns holds the 0-based positions of every occurrence.
	Columns []int
}

// Error returns a formatted message naming the duplicate and its columns.
func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("csv: duplicate header name %q in columns %v", e.Name, e.Columns)
}

// Unwrap returns ErrDuplicateHeader.
func (e *DuplicateHeaderError) Unwrap() error {
	return ErrDuplicateHeader
}

// DialectError reports an invalid dialect configuration.
type DialectError struct {
	Field   string
	Message string
}

func (e *DialectError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
