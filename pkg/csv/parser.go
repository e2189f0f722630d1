package csv

import (
	"errors"
	"io"
	"strings"

	"github.com/Fati1996i/commons-csv/internal/tokenizer"
)

// Checkpoint captures where a session stands between records: the number
// the next emitted record will receive and the offsets at which it
// begins. A checkpoint taken after record k, handed to WithCheckpoint
// over a source positioned at its offsets, reproduces the remaining
// sequence exactly.
type Checkpoint struct {
	// RecordNumber is the number the next emitted record receives.
	RecordNumber int64
	// CharOffset is the rune offset at which the next record begins.
	CharOffset int64
	// ByteOffset is the byte offset at which the next record begins, or
	// -1 when the session does not track bytes.
	ByteOffset int64
}

// ParserOption adjusts session construction. Options cover resume
// parameters; everything about the format itself lives on the Dialect.
type ParserOption func(*parserConfig)

type parserConfig struct {
	startNumber int64
	startChar   int64
	startByte   int64
	trackBytes  bool
}

// WithStartRecordNumber seeds the number assigned to the first emitted
// record. Default: 1.
func WithStartRecordNumber(n int64) ParserOption {
	return func(c *parserConfig) { c.startNumber = n }
}

// WithStartOffset seeds the character offset reported for the first
// record. The reader itself must already be positioned there; the seed
// only feeds position reporting.
func WithStartOffset(chars int64) ParserOption {
	return func(c *parserConfig) { c.startChar = chars }
}

// WithByteTracking enables byte offsets in record Positions and
// Checkpoints. Without it those report -1.
func WithByteTracking() ParserOption {
	return func(c *parserConfig) { c.trackBytes = true }
}

// WithCheckpoint seeds record numbering and offsets from a Checkpoint
// captured by a previous session over the same source.
//
// A resumed session sees only the source's remaining content. A dialect
// deriving headers from the first record would re-derive them from the
// resume point; carry known names into a resumed session with
// HeaderExplicit, or resume with HeaderNone.
func WithCheckpoint(cp Checkpoint) ParserOption {
	return func(c *parserConfig) {
		c.startNumber = cp.RecordNumber
		c.startChar = cp.CharOffset
		if cp.ByteOffset >= 0 {
			c.startByte = cp.ByteOffset
			c.trackBytes = true
		}
	}
}

// Parser is a single-pass parsing session over one CSV input. It
// assembles tokens into records, numbers them, resolves headers during
// construction, and tracks positions so a session can be checkpointed
// and resumed.
//
// A Parser is forward-only and must not be shared between goroutines.
// Concurrent sessions over separate readers are independent.
type Parser struct {
	dialect Dialect
	tok     *tokenizer.Tokenizer
	src     io.Reader

	header  *Header
	pending []*Record // assembled during header resolution, emitted first

	nextNum    int64
	baseChar   int64 // seeds for resumed sessions
	baseByte   int64
	charOffset int64 // absolute offset after the last closed record
	byteOffset int64
	trackBytes bool

	expectedWidth int
	exhausted     bool
	closed        bool
	err           error // sticky fatal error
}

// NewParser starts a parsing session reading from r with the given
// dialect. The dialect is validated and the header resolved before the
// first record is available; explicit duplicate names or a malformed
// first record fail construction.
func NewParser(r io.Reader, d Dialect, opts ...ParserOption) (*Parser, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	cfg := parserConfig{startNumber: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.startNumber < 1 {
		return nil, &DialectError{Field: "StartRecordNumber", Message: "record numbers start at 1"}
	}
	if cfg.startChar < 0 || cfg.startByte < 0 {
		return nil, &DialectError{Field: "StartOffset", Message: "offsets cannot be negative"}
	}
	p := &Parser{
		dialect:    d,
		tok:        tokenizer.New(r, d.tokenizerOptions()),
		src:        r,
		header:     emptyHeader,
		nextNum:    cfg.startNumber,
		baseChar:   cfg.startChar,
		baseByte:   cfg.startByte,
		charOffset: cfg.startChar,
		byteOffset: cfg.startByte,
		trackBytes: cfg.trackBytes,
	}
	if err := p.resolveHeader(); err != nil {
		return nil, err
	}
	if d.EnforceFieldCount && p.header.Len() > 0 {
		p.expectedWidth = p.header.Len()
	}
	return p, nil
}

// Read returns the next record. At exhaustion it returns io.EOF, and
// keeps returning io.EOF without touching the source. A record violating
// the enforced field count is returned together with a *FieldCountError;
// the session stays usable. All other errors are fatal and repeat on
// every later call.
func (p *Parser) Read() (*Record, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if p.err != nil {
		return nil, p.err
	}
	if len(p.pending) > 0 {
		rec := p.pending[0]
		p.pending = p.pending[1:]
		return rec, p.checkWidth(rec)
	}
	if p.exhausted {
		return nil, io.EOF
	}
	for {
		rec, err := p.assemble()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			p.exhausted = true
			return nil, io.EOF
		}
		if p.dialect.RowFilter != nil && !p.dialect.RowFilter(rec.number) {
			continue
		}
		return rec, p.checkWidth(rec)
	}
}

// ReadAll drains the session from its current position. A clean drain
// returns a nil error, not io.EOF. On error the records read so far are
// returned with it; a field count violation includes the offending
// record.
func (p *Parser) ReadAll() ([]*Record, error) {
	var records []*Record
	for {
		rec, err := p.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			if rec != nil {
				records = append(records, rec)
			}
			return records, err
		}
		records = append(records, rec)
	}
}

// Close releases the underlying reader when it implements io.Closer.
// Closing is idempotent; reads after Close fail with ErrClosed.
func (p *Parser) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Header returns the session's resolved header. It is never nil; a
// session without a header mode gets an empty Header.
func (p *Parser) Header() *Header {
	return p.header
}

// Checkpoint returns where the session stands. Together with a source
// positioned at the checkpoint's offsets it seeds a resumed session, see
// WithCheckpoint.
func (p *Parser) Checkpoint() Checkpoint {
	if len(p.pending) > 0 {
		next := p.pending[0]
		return Checkpoint{RecordNumber: next.number, CharOffset: next.pos.Char, ByteOffset: next.pos.Byte}
	}
	cp := Checkpoint{RecordNumber: p.nextNum, CharOffset: p.charOffset, ByteOffset: p.byteOffset}
	if !p.trackBytes {
		cp.ByteOffset = -1
	}
	return cp
}

// RecordNumber returns the number the next emitted record receives.
func (p *Parser) RecordNumber() int64 {
	return p.Checkpoint().RecordNumber
}

// CharacterOffset returns the rune offset at which the next record
// begins.
func (p *Parser) CharacterOffset() int64 {
	return p.Checkpoint().CharOffset
}

// ByteOffset returns the byte offset at which the next record begins, or
// -1 when the session does not track bytes.
func (p *Parser) ByteOffset() int64 {
	return p.Checkpoint().ByteOffset
}

// resolveHeader runs at most once, during construction. Records
// assembled here bypass the row filter; comment records encountered
// before the header row are buffered for emission in order.
func (p *Parser) resolveHeader() error {
	switch p.dialect.Header {
	case HeaderExplicit:
		h, err := newHeader(p.headerNames(p.dialect.HeaderNames), p.dialect.DuplicateHeaders)
		if err != nil {
			return err
		}
		p.header = h
		if p.dialect.SkipHeaderRecord {
			// Discard the first physical record; it repeats the names.
			if _, err := p.assembleData(); err != nil {
				return err
			}
		}

	case HeaderFromFirstRecord:
		rec, err := p.assembleData()
		if err != nil {
			return err
		}
		if rec == nil {
			break // empty input: the session runs without headers
		}
		h, err := newHeader(p.headerNames(rec.fields), p.dialect.DuplicateHeaders)
		if err != nil {
			return err
		}
		p.header = h
		if !p.dialect.SkipHeaderRecord {
			rec.isHeader = true
			p.pending = append(p.pending, rec)
		}
	}

	for _, rec := range p.pending {
		rec.header = p.header
	}
	return nil
}

// assembleData assembles records until a data record or end of input,
// buffering comment records for later emission.
func (p *Parser) assembleData() (*Record, error) {
	for {
		rec, err := p.assemble()
		if err != nil || rec == nil {
			return rec, err
		}
		if rec.isComment {
			p.pending = append(p.pending, rec)
			continue
		}
		return rec, nil
	}
}

// headerNames applies the dialect's trim setting to candidate names.
func (p *Parser) headerNames(fields []string) []string {
	if !p.dialect.Trim {
		return fields
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimSpace(f)
	}
	return names
}

// assemble builds the next physical record from the token stream. It
// returns (nil, nil) once the input is exhausted. Numbering and offset
// advancement happen here so rows dropped by the filter still consume
// numbers; filtering and width checks belong to Read.
func (p *Parser) assemble() (*Record, error) {
	var fields []string
	for {
		tk, err := p.tok.Next()
		if err != nil {
			return nil, p.fatal(err)
		}
		switch tk.Kind {
		case tokenizer.KindField:
			fields = append(fields, p.fieldValue(tk.Value))

		case tokenizer.KindComment:
			// Comment markers are only recognized at the start of a line,
			// so no fields can be in progress here.
			if !p.dialect.KeepComments {
				continue
			}
			return p.finishRecord(nil, tk.Value, true, tk), nil

		case tokenizer.KindEOR:
			if len(fields) == 0 {
				if p.dialect.IgnoreEmptyLines {
					continue
				}
				// An empty line reads as a record of one empty field.
				fields = []string{""}
			}
			return p.finishRecord(fields, "", false, tk), nil

		case tokenizer.KindEOF:
			if len(fields) > 0 {
				return p.finishRecord(fields, "", false, tk), nil
			}
			return nil, nil
		}
	}
}

// fieldValue applies trimming and the null marker to one field.
func (p *Parser) fieldValue(v string) string {
	if p.dialect.Trim {
		v = strings.TrimSpace(v)
	}
	if p.dialect.NullString != "" && v == p.dialect.NullString {
		return ""
	}
	return v
}

// finishRecord closes the record currently being assembled: assign the
// next number, snapshot the start position, and advance the tracker to
// the closing token's end.
func (p *Parser) finishRecord(fields []string, comment string, isComment bool, tk tokenizer.Token) *Record {
	rec := &Record{
		fields:    fields,
		number:    p.nextNum,
		comment:   comment,
		isComment: isComment,
		header:    p.header,
		pos:       Position{Char: p.charOffset, Byte: -1},
	}
	if p.trackBytes {
		rec.pos.Byte = p.byteOffset
	}
	p.nextNum++
	p.charOffset = p.baseChar + tk.CharEnd
	p.byteOffset = p.baseByte + tk.ByteEnd
	return rec
}

// checkWidth enforces EnforceFieldCount. The expected width is the
// header width when a header exists, otherwise the width of the first
// data record assembled. Comment records are exempt. A non-nil return
// still carries its record.
func (p *Parser) checkWidth(rec *Record) error {
	if !p.dialect.EnforceFieldCount || rec.isComment {
		return nil
	}
	if p.expectedWidth == 0 {
		p.expectedWidth = len(rec.fields)
		return nil
	}
	if len(rec.fields) != p.expectedWidth {
		return &FieldCountError{RecordNumber: rec.number, Expected: p.expectedWidth, Got: len(rec.fields)}
	}
	return nil
}

// fatal wraps lexical errors with position and the in-progress record
// number, and makes the failure sticky.
func (p *Parser) fatal(err error) error {
	var lex *tokenizer.Error
	if errors.As(err, &lex) {
		err = &ParseError{
			RecordNumber: p.nextNum,
			Line:         lex.Line,
			Column:       lex.Column,
			Err:          lex.Err,
		}
	}
	p.err = err
	return err
}
