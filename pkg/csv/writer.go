package csv

import (
	"bufio"
	"io"
	"strings"
)

// Writer emits CSV records to an underlying io.Writer through an
// internal buffer. Call Flush after the last write to push buffered data
// out.
//
// Fields are quoted when they contain the delimiter, the quote
// character, or a line terminator, with quotes escaped by doubling.
// AlwaysQuote forces quoting for every field.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default: ','
	Comma rune
	// Quote is the quoting character. 0 disables quoting entirely and
	// fields are written verbatim. Default: '"'
	Quote rune
	// Comment is the marker emitted by WriteComment. Default: '#'
	Comment rune
	// UseCRLF terminates records with \r\n instead of \n.
	UseCRLF bool
	// AlwaysQuote forces quoting for all fields.
	AlwaysQuote bool

	err error
}

// NewWriter creates a Writer with RFC 4180 defaults.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		dst:     bufio.NewWriter(w),
		Comma:   ',',
		Quote:   '"',
		Comment: '#',
	}
}

// NewDialectWriter creates a Writer whose delimiter, quote, and comment
// marker come from d, so parsed data can round-trip through the same
// dialect.
func NewDialectWriter(w io.Writer, d Dialect) *Writer {
	dw := NewWriter(w)
	dw.Comma = d.Comma
	dw.Quote = d.Quote
	if d.Comment != 0 {
		dw.Comment = d.Comment
	}
	return dw
}

// Write emits a single record followed by the configured line
// terminator. Once a write fails, every later call returns the same
// error.
func (w *Writer) Write(fields []string) error {
	if w.err != nil {
		return w.err
	}
	for i, field := range fields {
		if i > 0 {
			if _, err := w.dst.WriteRune(w.Comma); err != nil {
				return w.fail(err)
			}
		}
		if err := w.writeField(field); err != nil {
			return w.fail(err)
		}
	}
	return w.terminate()
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	for _, fields := range records {
		if err := w.Write(fields); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord emits a parsed record: comment records go out through
// WriteComment, everything else through Write.
func (w *Writer) WriteRecord(rec *Record) error {
	if rec.IsComment() {
		return w.WriteComment(rec.Comment())
	}
	return w.Write(rec.fields)
}

// WriteRecords writes multiple parsed records, stopping at the first
// error.
func (w *Writer) WriteRecords(records []*Record) error {
	for _, rec := range records {
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteComment emits text as comment lines, one marker-prefixed line per
// line of text.
func (w *Writer) WriteComment(text string) error {
	if w.err != nil {
		return w.err
	}
	if w.Comment == 0 {
		return w.fail(&DialectError{Field: "Comment", Message: "no comment marker configured"})
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if _, err := w.dst.WriteRune(w.Comment); err != nil {
			return w.fail(err)
		}
		if _, err := w.dst.WriteString(line); err != nil {
			return w.fail(err)
		}
		if err := w.terminate(); err != nil {
			return err
		}
	}
	return nil
}

// Flush pushes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

// writeField writes one field, quoting and escaping as needed.
func (w *Writer) writeField(field string) error {
	if w.Quote == 0 || !w.fieldNeedsQuote(field) {
		_, err := w.dst.WriteString(field)
		return err
	}
	if _, err := w.dst.WriteRune(w.Quote); err != nil {
		return err
	}
	for _, r := range field {
		if r == w.Quote {
			if _, err := w.dst.WriteRune(w.Quote); err != nil {
				return err
			}
		}
		if _, err := w.dst.WriteRune(r); err != nil {
			return err
		}
	}
	_, err := w.dst.WriteRune(w.Quote)
	return err
}

// fieldNeedsQuote reports whether field must be quoted to survive a
// round trip.
func (w *Writer) fieldNeedsQuote(field string) bool {
	if w.AlwaysQuote {
		return true
	}
	return strings.ContainsRune(field, w.Comma) ||
		strings.ContainsRune(field, w.Quote) ||
		strings.ContainsAny(field, "\r\n")
}

// terminate writes the record terminator.
func (w *Writer) terminate() error {
	if w.UseCRLF {
		if _, err := w.dst.WriteString("\r\n"); err != nil {
			return w.fail(err)
		}
		return nil
	}
	if err := w.dst.WriteByte('\n'); err != nil {
		return w.fail(err)
	}
	return nil
}

// fail records err as the sticky writer error and returns it.
func (w *Writer) fail(err error) error {
	w.err = err
	return err
}
