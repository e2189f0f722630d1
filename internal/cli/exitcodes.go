package cli

import (
	"errors"
	"io/fs"
	"net/url"

	"github.com/Fati1996i/commons-csv/pkg/csv"
)

// Exit codes for csvtool.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseError indicates malformed CSV input.
	ExitParseError = 1

	// ExitDialectError indicates an invalid dialect configuration.
	ExitDialectError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file or network I/O errors.
	ExitIOError = 74
)

// ExitCodeForError maps an error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var dialectErr *csv.DialectError
	var parseErr *csv.ParseError
	var fieldErr *csv.FieldCountError
	var pathErr *fs.PathError
	var urlErr *url.Error

	switch {
	case errors.As(err, &dialectErr):
		return ExitDialectError
	case errors.As(err, &parseErr), errors.As(err, &fieldErr):
		return ExitParseError
	case errors.As(err, &pathErr), errors.As(err, &urlErr):
		return ExitIOError
	}

	return ExitInternalError
}
