// Package csv provides dialect-driven CSV parsing with record numbering,
// header resolution, and resumable positions.
//
// This package implements a complete CSV parser following RFC 4180, with
// a configurable dialect covering delimiter, quoting, escapes, comments,
// header handling, and row filtering.
//
// # Sessions
//
// Parsing happens through a session: a Parser created over an io.Reader
// with a Dialect. The session resolves headers during construction,
// numbers every record it assembles starting at 1, and hands records out
// one at a time:
//
//	dialect := csv.DefaultDialect()
//	dialect.Header = csv.HeaderFromFirstRecord
//	dialect.SkipHeaderRecord = true
//
//	parser, err := csv.ParseString("name,age\nAlice,30\nBob,25", dialect)
//	if err != nil {
//	    // handle error
//	}
//	defer parser.Close()
//
//	for {
//	    record, err := parser.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    name, _ := record.ByName("name")
//	    fmt.Println(record.Number(), name)
//	}
//
// Records carry their 1-based number and the position of their first
// character, so a session can be checkpointed between records and
// resumed later from the same source, see Checkpoint and WithCheckpoint.
//
// # Dialects
//
// A Dialect is a plain value. Start from DefaultDialect, adjust fields,
// and pass it to NewParser, NewScanner, or the Parse helpers. The zero
// value is not usable; NewParser validates and rejects it.
//
// # Thread Safety
//
// A single session is not safe for concurrent use; read from one
// goroutine at a time. Sessions over separate readers are fully
// independent, and a Dialect value can configure any number of sessions
// concurrently.
//
//	// Safe: concurrent sessions over separate inputs
//	go func() { csv.ReadAllString(input1, dialect) }()
//	go func() { csv.ReadAllString(input2, dialect) }()
package csv

import "io"

// ReadAll parses everything r yields into a slice of records. It is a
// convenience for NewParser followed by ReadAll on the session.
func ReadAll(r io.Reader, d Dialect) ([]*Record, error) {
	p, err := NewParser(r, d)
	if err != nil {
		return nil, err
	}
	return p.ReadAll()
}

// ReadAllString parses a complete in-memory document into a slice of
// records.
//
// Example:
//
//	records, err := csv.ReadAllString("a,b\nc,d", csv.DefaultDialect())
//	// records[0].Fields() is [a b], records[1].Fields() is [c d]
func ReadAllString(s string, d Dialect) ([]*Record, error) {
	p, err := ParseString(s, d)
	if err != nil {
		return nil, err
	}
	return p.ReadAll()
}

// Validate checks whether input parses cleanly under the dialect.
//
// Returns nil if the input is valid, otherwise the first error the
// session hits:
//
//	if err := csv.Validate(input, csv.DefaultDialect()); err != nil {
//	    fmt.Println("invalid CSV:", err)
//	}
func Validate(input string, d Dialect) error {
	p, err := ParseString(input, d)
	if err != nil {
		return err
	}
	for {
		if _, err := p.Read(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
