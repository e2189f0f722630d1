package csv_test

import (
	"testing"

	"github.com/Fati1996i/commons-csv/pkg/csv"
)

func TestSniffer_DetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{
			name:   "comma",
			sample: "a,b,c\n1,2,3\n4,5,6",
			want:   ',',
		},
		{
			name:   "tab",
			sample: "a\tb\tc\n1\t2\t3\n",
			want:   '\t',
		},
		{
			name:   "semicolon",
			sample: "a;b;c\n1;2;3\n",
			want:   ';',
		},
		{
			name:   "pipe",
			sample: "a|b|c\n1|2|3\n",
			want:   '|',
		},
		{
			name:   "decimal commas in data do not fool it",
			sample: "name;score\nAlice;1,5\nBob;2,25\n",
			want:   ';',
		},
		{
			name:   "quoted delimiters do not count",
			sample: "\"a;b\",c\n\"d;e\",f\n",
			want:   ',',
		},
		{
			name:   "comment lines do not skew scoring",
			sample: "# a,b,c,d,e\nx;y\n1;2\n",
			want:   ';',
		},
		{
			name:   "single line",
			sample: "a,b,c",
			want:   ',',
		},
		{
			name:   "empty sample falls back to comma",
			sample: "",
			want:   ',',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := csv.NewSniffer(tt.sample).DetectDelimiter(); got != tt.want {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSniffer_DetectComment(t *testing.T) {
	s := csv.NewSniffer("# exported 2024-05-01\na,b\n1,2\n")
	if got := s.DetectComment(); got != '#' {
		t.Errorf("DetectComment() = %q, want '#'", got)
	}

	s = csv.NewSniffer("a,b\n1,2\n")
	if got := s.DetectComment(); got != 0 {
		t.Errorf("DetectComment() = %q, want 0", got)
	}
}

func TestSniffer_HasHeader(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   bool
	}{
		{
			name:   "identifier header over data",
			sample: "name,age,email\nJohn,30,john@example.com\n",
			want:   true,
		},
		{
			name:   "snake_case header",
			sample: "first_name,last_name\nJohn,Doe\n",
			want:   true,
		},
		{
			name:   "title case header",
			sample: "First Name,Last Name,Email\nJohn,Doe,john@example.com\n",
			want:   true,
		},
		{
			name:   "numeric first row",
			sample: "123,456,789\n111,222,333\n",
			want:   false,
		},
		{
			name:   "dates in first row",
			sample: "2024-01-15,John,30\n2024-01-16,Jane,25\n",
			want:   false,
		},
		{
			name:   "single line",
			sample: "a,b,c",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := csv.NewSniffer(tt.sample).HasHeader(); got != tt.want {
				t.Errorf("HasHeader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSniffer_ResultsAreCached(t *testing.T) {
	s := csv.NewSniffer("a;b\n1;2\n")
	if first, second := s.DetectDelimiter(), s.DetectDelimiter(); first != second {
		t.Errorf("DetectDelimiter() changed between calls: %q then %q", first, second)
	}
	if first, second := s.HasHeader(), s.HasHeader(); first != second {
		t.Errorf("HasHeader() changed between calls: %v then %v", first, second)
	}
}

func TestSniffer_Dialect(t *testing.T) {
	sample := "# quarterly export\nid;name\n1;Alice\n2;Bob\n"
	d := csv.NewSniffer(sample).Dialect()

	if d.Comma != ';' {
		t.Errorf("Comma = %q, want ';'", d.Comma)
	}
	if d.Comment != '#' {
		t.Errorf("Comment = %q, want '#'", d.Comment)
	}
	if d.Header != csv.HeaderFromFirstRecord || !d.SkipHeaderRecord {
		t.Errorf("Header = %v, SkipHeaderRecord = %v; want derived and skipped", d.Header, d.SkipHeaderRecord)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("sniffed dialect does not validate: %v", err)
	}

	// The sniffed dialect must be able to parse the sample it came from.
	records := mustReadAll(t, sample, d)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if v, ok := records[0].ByName("name"); !ok || v != "Alice" {
		t.Errorf(`ByName("name") = %q, %v; want "Alice", true`, v, ok)
	}
}
