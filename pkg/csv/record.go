package csv

// Position locates a record in its source, counted from the start of the
// source (or from the seeded offsets of a resumed session).
type Position struct {
	// Char is the rune offset of the record's first character.
	Char int64
	// Byte is the byte offset of the record's first character, or -1 when
	// the session does not track bytes.
	Byte int64
}

// Record is a single assembled row. It provides type-safe access to
// field values by index or by header name.
type Record struct {
	fields    []string
	number    int64
	comment   string
	isComment bool
	isHeader  bool
	pos       Position
	header    *Header
}

// Number returns the record's 1-based number within the session.
// Filtered rows consume numbers too, so numbers can skip.
func (r *Record) Number() int64 {
	return r.number
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return len(r.fields)
}

// Fields returns all field values in the record.
// This returns a copy of the fields slice.
func (r *Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Get gets the field value at the specified index.
// Returns (value, false) if the index is out of bounds.
// Index is 0-based.
func (r *Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// ByName gets the field value for the column named name in the session's
// header. Returns (value, false) when the session has no header, the
// name is unknown, or the record is too short to cover the column.
func (r *Record) ByName(name string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.Index(name)
	if !ok {
		return "", false
	}
	return r.Get(i)
}

// AsMap returns the record keyed by header name. Columns beyond the
// record's width are omitted; with duplicate names allowed, the first
// occurrence wins. Returns nil for a session without headers.
func (r *Record) AsMap() map[string]string {
	if r.header == nil || r.header.Len() == 0 {
		return nil
	}
	m := make(map[string]string, r.header.Len())
	for name, i := range r.header.index {
		if i < len(r.fields) {
			m[name] = r.fields[i]
		}
	}
	return m
}

// Comment returns the text of a comment record, marker excluded.
func (r *Record) Comment() string {
	return r.comment
}

// IsComment reports whether the record is a comment line kept by the
// dialect's KeepComments setting. Comment records have zero fields.
func (r *Record) IsComment() bool {
	return r.isComment
}

// IsHeader reports whether the record is the header row re-emitted by a
// HeaderFromFirstRecord session without SkipHeaderRecord.
func (r *Record) IsHeader() bool {
	return r.isHeader
}

// Position returns the record's start position in the source.
func (r *Record) Position() Position {
	return r.pos
}
