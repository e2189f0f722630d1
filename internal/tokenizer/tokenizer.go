package tokenizer

import (
	"bufio"
	"io"
	"strings"
)

// Options configures the tokenizer behavior. The tokenizer trusts its
// options; validation happens at the dialect level before construction.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune

	// Quote is the field quoting character. 0 disables quote handling
	// entirely, making quote characters ordinary field content.
	// Default: '"'
	Quote rune

	// Escape, if not 0, escapes the character that follows it inside a
	// field. With Escape 0, a quote inside a quoted field is written by
	// doubling it. Default: 0 (disabled)
	Escape rune

	// Comment, if not 0, marks lines whose first character is Comment as
	// comment lines. The marker is only recognized at the start of a line.
	// Default: 0 (disabled)
	Comment rune
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Comma: ',',
		Quote: '"',
	}
}

// Tokenizer reads CSV input rune by rune and produces tokens.
//
// The tokenizer is single-threaded and keeps rune and byte offsets for
// everything it has consumed. Offsets are relative to the start of the
// reader; callers layering a resumed session on top add their own base.
type Tokenizer struct {
	r    *bufio.Reader
	opts Options

	chars int64 // runes consumed
	bytes int64 // bytes consumed

	line     int // 1-indexed, position of the next rune
	col      int
	prevLine int // position of the rune most recently read
	prevCol  int

	lineStart  bool // next rune starts a line; comment markers recognized
	afterDelim bool // a delimiter was just consumed; a field must follow
	done       bool // input exhausted and EOF token emitted
	err        error
}

// New creates a Tokenizer reading from r.
func New(r io.Reader, opts Options) *Tokenizer {
	return &Tokenizer{
		r:         bufio.NewReader(r),
		opts:      opts,
		line:      1,
		col:       1,
		lineStart: true,
	}
}

// Next returns the next token. At the end of the input it returns a
// KindEOF token, and keeps returning it on every subsequent call. Once
// Next returns an error, every later call returns the same error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	if t.done {
		return t.token(KindEOF, ""), nil
	}

	r, size, err := t.readRune()
	if err != nil {
		if err == io.EOF {
			if t.afterDelim {
				// A trailing delimiter yields one empty field before EOF.
				t.afterDelim = false
				return t.token(KindField, ""), nil
			}
			t.done = true
			return t.token(KindEOF, ""), nil
		}
		return Token{}, t.fail(err)
	}

	// Comment lines are recognized only at the start of a line. Anywhere
	// else the marker is ordinary field content.
	if t.lineStart && t.opts.Comment != 0 && r == t.opts.Comment {
		return t.scanComment()
	}

	if r == '\n' || r == '\r' {
		// A terminator right after a delimiter still yields the trailing
		// empty field first; the terminator is re-read on the next call.
		if t.afterDelim {
			t.unreadRune(size)
			t.afterDelim = false
			return t.token(KindField, ""), nil
		}
		if r == '\r' {
			if err := t.maybeConsumeLF(); err != nil {
				return Token{}, t.fail(err)
			}
		}
		t.lineStart = true
		return t.token(KindEOR, ""), nil
	}

	t.lineStart = false
	t.afterDelim = false
	if t.opts.Quote != 0 && r == t.opts.Quote {
		return t.scanQuoted()
	}
	return t.scanUnquoted(r, size)
}

// scanUnquoted scans a field that did not start with a quote. The first
// rune has already been read.
func (t *Tokenizer) scanUnquoted(r rune, size int) (Token, error) {
	var buf strings.Builder
	for {
		switch {
		case r == t.opts.Comma:
			t.afterDelim = true
			return t.token(KindField, buf.String()), nil

		case r == '\n' || r == '\r':
			t.unreadRune(size)
			return t.token(KindField, buf.String()), nil

		case t.opts.Escape != 0 && r == t.opts.Escape:
			esc, _, err := t.readRune()
			if err != nil {
				if err == io.EOF {
					return Token{}, t.fail(&Error{Line: t.prevLine, Column: t.prevCol, Err: ErrTrailingEscape})
				}
				return Token{}, t.fail(err)
			}
			buf.WriteRune(esc)

		case t.opts.Quote != 0 && r == t.opts.Quote:
			return Token{}, t.fail(&Error{Line: t.prevLine, Column: t.prevCol, Err: ErrBareQuote})

		default:
			buf.WriteRune(r)
		}

		var err error
		r, size, err = t.readRune()
		if err != nil {
			if err == io.EOF {
				return t.token(KindField, buf.String()), nil
			}
			return Token{}, t.fail(err)
		}
	}
}

// scanQuoted scans a quoted field. The opening quote has already been
// consumed.
func (t *Tokenizer) scanQuoted() (Token, error) {
	openLine, openCol := t.prevLine, t.prevCol
	var buf strings.Builder
	for {
		r, _, err := t.readRune()
		if err != nil {
			if err == io.EOF {
				return Token{}, t.fail(&Error{Line: openLine, Column: openCol, Err: ErrUnterminatedQuote})
			}
			return Token{}, t.fail(err)
		}

		switch {
		case t.opts.Escape != 0 && t.opts.Escape != t.opts.Quote && r == t.opts.Escape:
			esc, _, err := t.readRune()
			if err != nil {
				if err == io.EOF {
					return Token{}, t.fail(&Error{Line: t.prevLine, Column: t.prevCol, Err: ErrTrailingEscape})
				}
				return Token{}, t.fail(err)
			}
			buf.WriteRune(esc)

		case r == t.opts.Quote:
			nr, nsize, err := t.readRune()
			if err != nil {
				if err == io.EOF {
					// Closing quote at end of input.
					return t.token(KindField, buf.String()), nil
				}
				return Token{}, t.fail(err)
			}
			switch {
			case nr == t.opts.Quote:
				// Doubled quote is a literal quote.
				buf.WriteRune(nr)
			case nr == t.opts.Comma:
				t.afterDelim = true
				return t.token(KindField, buf.String()), nil
			case nr == '\n' || nr == '\r':
				t.unreadRune(nsize)
				return t.token(KindField, buf.String()), nil
			default:
				return Token{}, t.fail(&Error{Line: t.prevLine, Column: t.prevCol, Err: ErrBareQuote})
			}

		default:
			buf.WriteRune(r)
		}
	}
}

// scanComment scans a comment line. The marker has already been consumed;
// the line terminator is consumed too so the comment token covers the
// whole line.
func (t *Tokenizer) scanComment() (Token, error) {
	var buf strings.Builder
	for {
		r, _, err := t.readRune()
		if err != nil {
			if err == io.EOF {
				return t.token(KindComment, buf.String()), nil
			}
			return Token{}, t.fail(err)
		}
		if r == '\n' {
			break
		}
		if r == '\r' {
			if err := t.maybeConsumeLF(); err != nil {
				return Token{}, t.fail(err)
			}
			break
		}
		buf.WriteRune(r)
	}
	t.lineStart = true
	return t.token(KindComment, buf.String()), nil
}

// maybeConsumeLF consumes a single LF if it immediately follows, so CRLF
// counts as one terminator.
func (t *Tokenizer) maybeConsumeLF() error {
	r, size, err := t.readRune()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if r != '\n' {
		t.unreadRune(size)
	}
	return nil
}

// readRune consumes one rune and advances the offset and position
// counters.
func (t *Tokenizer) readRune() (rune, int, error) {
	r, size, err := t.r.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	t.chars++
	t.bytes += int64(size)
	t.prevLine, t.prevCol = t.line, t.col
	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return r, size, nil
}

// unreadRune puts the most recently read rune back and restores the
// counters. Only valid immediately after readRune, matching the bufio
// guarantee.
func (t *Tokenizer) unreadRune(size int) {
	_ = t.r.UnreadRune()
	t.chars--
	t.bytes -= int64(size)
	t.line, t.col = t.prevLine, t.prevCol
}

// token builds a token ending at the current offsets.
func (t *Tokenizer) token(kind Kind, value string) Token {
	return Token{Kind: kind, Value: value, CharEnd: t.chars, ByteEnd: t.bytes}
}

// fail records err as the sticky stream error and returns it.
func (t *Tokenizer) fail(err error) error {
	t.err = err
	return err
}
