package csv

import "io"

// Scanner provides a loop-friendly streaming interface for reading CSV
// records one at a time. It wraps a Parser, so headers, numbering,
// filtering, and checkpoints all behave exactly as they do on the
// session itself.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//
//	dialect := csv.DefaultDialect()
//	dialect.Header = csv.HeaderFromFirstRecord
//	dialect.SkipHeaderRecord = true
//
//	scanner, err := csv.NewScanner(file, dialect)
//	if err != nil {
//	    // handle error
//	}
//	defer scanner.Close()
//
//	for scanner.Scan() {
//	    name, _ := scanner.Record().ByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	p   *Parser
	rec *Record
	err error
}

// NewScanner creates a Scanner reading CSV from r with the given
// dialect. Construction resolves the header, so it can fail the same way
// NewParser does.
func NewScanner(r io.Reader, d Dialect, opts ...ParserOption) (*Scanner, error) {
	p, err := NewParser(r, d, opts...)
	if err != nil {
		return nil, err
	}
	return &Scanner{p: p}, nil
}

// Scan advances the scanner to the next record. It returns false at the
// end of the input or on the first error; Err tells the two apart.
//
// Scan stops on every error, field count violations included. Use the
// Parser directly to keep reading past per-record violations.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	rec, err := s.p.Read()
	if err == io.EOF {
		s.rec = nil
		return false
	}
	if err != nil {
		s.err = err
		s.rec = nil
		return false
	}
	s.rec = rec
	return true
}

// Record returns the record from the latest successful Scan, or nil
// before the first Scan and after Scan returned false.
func (s *Scanner) Record() *Record {
	return s.rec
}

// Err returns the first error encountered during scanning. It returns
// nil when scanning stopped at the end of the input.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the resolved header names, or nil for a session
// without headers.
func (s *Scanner) Headers() []string {
	return s.p.Header().Names()
}

// Checkpoint returns the underlying session's checkpoint.
func (s *Scanner) Checkpoint() Checkpoint {
	return s.p.Checkpoint()
}

// Close closes the underlying session. Closing is idempotent.
func (s *Scanner) Close() error {
	return s.p.Close()
}
