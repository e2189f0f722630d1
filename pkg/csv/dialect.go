package csv

import (
	"unicode/utf8"

	"github.com/Fati1996i/commons-csv/internal/tokenizer"
)

// HeaderMode selects how a parsing session resolves column headers.
type HeaderMode int

const (
	// HeaderNone leaves the session without headers (default). The first
	// row receives no special treatment.
	HeaderNone HeaderMode = iota

	// HeaderExplicit takes the header names from Dialect.HeaderNames. No
	// input row is consumed for resolution itself; set SkipHeaderRecord
	// when the input repeats the names on its first row.
	HeaderExplicit

	// HeaderFromFirstRecord derives the header names from the fields of
	// the first record in the input.
	HeaderFromFirstRecord
)

// String returns the string representation of a HeaderMode.
func (m HeaderMode) String() string {
	switch m {
	case HeaderNone:
		return "none"
	case HeaderExplicit:
		return "explicit"
	case HeaderFromFirstRecord:
		return "first-record"
	default:
		return "HeaderMode(?)"
	}
}

// DuplicateMode selects how repeated header names are treated during
// header resolution.
type DuplicateMode int

const (
	// DuplicatesDisallow rejects any repeated name, blank ones included
	// (default).
	DuplicatesDisallow DuplicateMode = iota

	// DuplicatesAllowAll accepts repeated names. Lookups by name resolve
	// to the first occurrence; later duplicates stay reachable by index.
	DuplicatesAllowAll

	// DuplicatesAllowEmpty accepts repeated blank names only; repeated
	// non-blank names are rejected as with DuplicatesDisallow.
	DuplicatesAllowEmpty
)

// String returns the string representation of a DuplicateMode.
func (m DuplicateMode) String() string {
	switch m {
	case DuplicatesDisallow:
		return "disallow"
	case DuplicatesAllowAll:
		return "allow-all"
	case DuplicatesAllowEmpty:
		return "allow-empty"
	default:
		return "DuplicateMode(?)"
	}
}

// Dialect configures a parsing session. It is a plain value: copy it,
// adjust fields, and hand it to NewParser. A Dialect is never mutated by
// the session, so one value can configure any number of sessions.
type Dialect struct {
	// Comma is the field delimiter.
	// It must be a valid rune other than quote, CR, or LF.
	// Default: ','
	Comma rune

	// Quote is the field quoting character. Inside a quoted field the
	// delimiter and line terminators are literal content, and a doubled
	// quote is an escaped quote. 0 disables quoting entirely.
	// Default: '"'
	Quote rune

	// Escape, if not 0, escapes the character that follows it inside a
	// field, replacing doubled-quote escaping inside quoted fields.
	// Default: 0 (disabled)
	Escape rune

	// Comment, if not 0, marks lines whose first character is Comment as
	// comment lines. Default: 0 (disabled)
	Comment rune

	// Header selects the header resolution mode. Default: HeaderNone
	Header HeaderMode

	// HeaderNames supplies the column names for HeaderExplicit.
	HeaderNames []string

	// SkipHeaderRecord consumes the first physical record without emitting
	// it. With HeaderExplicit it discards the row presumed to repeat the
	// names; with HeaderFromFirstRecord it suppresses re-emission of the
	// derived header row. Default: false
	SkipHeaderRecord bool

	// DuplicateHeaders selects the duplicate-name policy applied during
	// header resolution. Default: DuplicatesDisallow
	DuplicateHeaders DuplicateMode

	// IgnoreEmptyLines discards lines with zero characters instead of
	// turning them into single-empty-field records. Default: true via
	// DefaultDialect
	IgnoreEmptyLines bool

	// EnforceFieldCount checks every data record against the expected
	// width: the header width when a header exists, otherwise the width of
	// the first data record. Default: false
	EnforceFieldCount bool

	// Trim removes leading and trailing white space from every field value
	// and header name. Default: false
	Trim bool

	// NullString, if not empty, is the field content (after trimming when
	// Trim is set) that reads back as the empty string. Default: ""
	NullString string

	// KeepComments turns comment lines into zero-field records annotated
	// with the comment text instead of discarding them. Default: false
	KeepComments bool

	// RowFilter, if not nil, is consulted with each record's 1-based
	// number. Records it rejects still consume their number and advance
	// the session's offsets, but are never returned. Default: nil
	RowFilter func(recordNumber int64) bool
}

// DefaultDialect returns the RFC 4180 defaults: comma delimiter, double
// quote with doubled-quote escaping, empty lines ignored, no headers.
func DefaultDialect() Dialect {
	return Dialect{
		Comma:            ',',
		Quote:            '"',
		IgnoreEmptyLines: true,
	}
}

// validDelim reports whether r can serve as a delimiter, quote, escape,
// or comment rune.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks the dialect for impossible combinations. NewParser
// calls it on every session construction.
func (d Dialect) Validate() error {
	if !validDelim(d.Comma) {
		return &DialectError{Field: "Comma", Message: "invalid delimiter"}
	}
	if d.Quote != 0 {
		if !validDelim(d.Quote) {
			return &DialectError{Field: "Quote", Message: "invalid quote character"}
		}
		if d.Quote == d.Comma {
			return &DialectError{Field: "Quote", Message: "quote character same as delimiter"}
		}
	}
	if d.Escape != 0 {
		if !validDelim(d.Escape) {
			return &DialectError{Field: "Escape", Message: "invalid escape character"}
		}
		if d.Escape == d.Comma {
			return &DialectError{Field: "Escape", Message: "escape character same as delimiter"}
		}
	}
	if d.Comment != 0 {
		if !validDelim(d.Comment) {
			return &DialectError{Field: "Comment", Message: "invalid comment character"}
		}
		if d.Comment == d.Comma {
			return &DialectError{Field: "Comment", Message: "comment character same as delimiter"}
		}
		if d.Comment == d.Quote {
			return &DialectError{Field: "Comment", Message: "comment character same as quote"}
		}
	}
	switch d.Header {
	case HeaderNone:
		if len(d.HeaderNames) > 0 {
			return &DialectError{Field: "HeaderNames", Message: "header names require HeaderExplicit"}
		}
		if d.SkipHeaderRecord {
			return &DialectError{Field: "SkipHeaderRecord", Message: "nothing to skip without a header mode"}
		}
	case HeaderExplicit:
		if len(d.HeaderNames) == 0 {
			return &DialectError{Field: "HeaderNames", Message: "HeaderExplicit requires at least one name"}
		}
	case HeaderFromFirstRecord:
		if len(d.HeaderNames) > 0 {
			return &DialectError{Field: "HeaderNames", Message: "header names conflict with HeaderFromFirstRecord"}
		}
	default:
		return &DialectError{Field: "Header", Message: "unknown header mode"}
	}
	switch d.DuplicateHeaders {
	case DuplicatesDisallow, DuplicatesAllowAll, DuplicatesAllowEmpty:
	default:
		return &DialectError{Field: "DuplicateHeaders", Message: "unknown duplicate mode"}
	}
	return nil
}

// tokenizerOptions maps the lexical subset of the dialect onto the token
// source configuration.
func (d Dialect) tokenizerOptions() tokenizer.Options {
	return tokenizer.Options{
		Comma:   d.Comma,
		Quote:   d.Quote,
		Escape:  d.Escape,
		Comment: d.Comment,
	}
}
