// Package tokenizer turns raw CSV input into a flat stream of tokens.
//
// The tokenizer handles the lexical layer only: field decoding (quoting,
// escapes), line terminators, and comment lines. Record assembly, header
// resolution, and record numbering happen one level up, in pkg/csv.
//
// Grammar (RFC 4180 with configurable delimiters):
//
//	file    = record *(terminator record) [terminator]
//	record  = field *(delimiter field) / comment
//	field   = quoted / unquoted
//	comment = marker *<any character except CR, LF>
//
// Each token carries the rune and byte offsets of the input immediately
// after the token, so callers can checkpoint the stream between records.
package tokenizer

import "fmt"

// Kind identifies the type of a token.
type Kind uint8

const (
	// KindField carries the decoded content of a single field.
	KindField Kind = iota
	// KindComment carries the text of a comment line, marker excluded.
	KindComment
	// KindEOR marks the end of a record (a consumed line terminator).
	KindEOR
	// KindEOF marks the end of the input. Once emitted it repeats forever.
	KindEOF
)

// String returns the string representation of a token kind.
func (k Kind) String() string {
	switch k {
	case KindField:
		return "Field"
	case KindComment:
		return "Comment"
	case KindEOR:
		return "EOR"
	case KindEOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Token is one lexical unit of CSV input.
type Token struct {
	// Kind is the token type.
	Kind Kind

	// Value is the decoded content for KindField and KindComment tokens.
	// It is empty for KindEOR and KindEOF.
	Value string

	// CharEnd is the rune offset of the input immediately after this token,
	// counted from the start of the input. Delimiters and line terminators
	// consumed by the token are included.
	CharEnd int64

	// ByteEnd is the byte offset of the input immediately after this token.
	ByteEnd int64
}
