// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError   = "error"
	FieldPath    = "path"
	FieldURL     = "url"
	FieldOutput  = "output"
	FieldCharset = "charset"

	// Dialect fields.
	FieldDialect   = "dialect"
	FieldDelimiter = "delimiter"
	FieldComment   = "comment"
	FieldHeader    = "header"

	// Session fields.
	FieldRecord  = "record"
	FieldRecords = "records"
	FieldFields  = "fields"
	FieldOffset  = "offset"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
