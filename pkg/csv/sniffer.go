package csv

import (
	"regexp"
	"strings"
	"unicode"
)

// Sniffer guesses the dialect of a CSV sample: the delimiter, whether a
// comment marker is in use, and whether the first row looks like a
// header. For best results, provide at least 2-3 lines of data.
//
// Sniffing is a heuristic. Its result is a starting point the caller can
// adjust, not a guarantee.
type Sniffer struct {
	sample string

	delimiter rune
	comment   rune
	hasHeader bool
	analyzed  bool
}

// candidateDelimiters are checked in scoring order.
var candidateDelimiters = []rune{',', '\t', ';', '|'}

// NewSniffer creates a Sniffer over a sample of CSV data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// DetectDelimiter returns the detected field delimiter. Candidates are
// comma, tab, semicolon, and pipe; comma wins when nothing scores.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// DetectComment returns '#' when the sample contains lines starting with
// it, otherwise 0.
func (s *Sniffer) DetectComment() rune {
	s.analyze()
	return s.comment
}

// HasHeader reports whether the first data row appears to be a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Dialect assembles the detection results into a ready-to-use dialect:
// detected delimiter and comment marker, and header derivation from the
// first record when one was detected.
func (s *Sniffer) Dialect() Dialect {
	s.analyze()
	d := DefaultDialect()
	d.Comma = s.delimiter
	d.Comment = s.comment
	if s.hasHeader {
		d.Header = HeaderFromFirstRecord
		d.SkipHeaderRecord = true
	}
	return d
}

// analyze runs detection once and caches the results.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	lines := s.dataLines()
	s.delimiter = detectDelimiter(lines)
	s.hasHeader = detectHeader(lines, s.delimiter)
	s.analyzed = true
}

// dataLines splits the sample into non-empty lines, detecting and
// dropping comment lines so they cannot skew delimiter scoring.
func (s *Sniffer) dataLines() []string {
	var lines []string
	for _, line := range strings.Split(s.sample, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			s.comment = '#'
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// detectDelimiter scores each candidate by its per-line count, with a
// bonus when the count is consistent across all lines.
func detectDelimiter(lines []string) rune {
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestScore := 0
	for _, delim := range candidateDelimiters {
		first := countDelimiter(lines[0], delim)
		if first == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if countDelimiter(line, delim) != first {
				consistent = false
				break
			}
		}
		score := first
		if consistent {
			score *= 10
		}
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

// countDelimiter counts occurrences of delim outside quoted sections.
func countDelimiter(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			count++
		}
	}
	return count
}

// detectHeader compares the first row against the header and data
// heuristics: headers are wordy identifiers, data rows carry numbers,
// dates, and addresses.
func detectHeader(lines []string, delim rune) bool {
	if len(lines) < 2 {
		return false
	}
	fields := splitLine(lines[0], delim)
	if len(fields) == 0 {
		return false
	}

	headerScore := 0
	dataScore := 0
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if looksLikeHeader(field) {
			headerScore++
		}
		if looksLikeData(field) {
			dataScore++
		}
	}
	return headerScore > dataScore
}

var (
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	titleCasePattern  = regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`)
	datePatterns      = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
)

// looksLikeHeader reports whether a field looks like a column name.
func looksLikeHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	return identifierPattern.MatchString(s) || titleCasePattern.MatchString(s)
}

// looksLikeData reports whether a field looks like a data value.
func looksLikeData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric reports whether s is an integer or decimal number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	hasDot := false
	for _, ch := range s {
		switch {
		case ch == '.':
			if hasDot {
				return false
			}
			hasDot = true
		case !unicode.IsDigit(ch):
			return false
		}
	}
	return true
}

// splitLine splits a line by delim, respecting double quotes. This is a
// rough split for scoring only; real parsing goes through the Parser.
func splitLine(line string, delim rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}
