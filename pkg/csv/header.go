package csv

import "strings"

// Header is the immutable name-to-column mapping of a parsing session.
// It is built at most once, during session construction, and lookups are
// deterministic from then on.
type Header struct {
	names []string
	index map[string]int
}

// emptyHeader backs every session without a header mode.
var emptyHeader = &Header{}

// newHeader builds a Header from names in column order, applying the
// duplicate policy. Names arrive already trimmed when the dialect says
// so.
func newHeader(names []string, mode DuplicateMode) (*Header, error) {
	h := &Header{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, name := range h.names {
		if _, seen := h.index[name]; !seen {
			h.index[name] = i
			continue
		}
		switch mode {
		case DuplicatesAllowAll:
			// Lookup stays on the first occurrence.
		case DuplicatesAllowEmpty:
			if !isBlank(name) {
				return nil, duplicateError(h.names, name)
			}
		default:
			return nil, duplicateError(h.names, name)
		}
	}
	return h, nil
}

// duplicateError collects every column holding name.
func duplicateError(names []string, name string) *DuplicateHeaderError {
	e := &DuplicateHeaderError{Name: name}
	for i, n := range names {
		if n == name {
			e.Columns = append(e.Columns, i)
		}
	}
	return e
}

// isBlank reports whether a name is empty or all white space.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Len returns the number of columns the header names.
func (h *Header) Len() int {
	return len(h.names)
}

// Names returns the header names in column order, as a copy. It returns
// nil for a session without headers.
func (h *Header) Names() []string {
	if len(h.names) == 0 {
		return nil
	}
	return append([]string(nil), h.names...)
}

// Index returns the column of name. With duplicate names allowed, the
// first occurrence wins.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Name returns the name of column i.
// Returns ("", false) if the index is out of bounds.
func (h *Header) Name(i int) (string, bool) {
	if i < 0 || i >= len(h.names) {
		return "", false
	}
	return h.names[i], true
}
