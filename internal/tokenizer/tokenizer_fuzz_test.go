//go:build go1.18
// +build go1.18

package tokenizer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzTokenizer feeds arbitrary input through the tokenizer and checks
// the stream invariants: no panics, offsets never move backwards, errors
// are sticky, and a clean stream ends with an EOF token whose offsets
// cover the whole input.
// Run with: go test -fuzz=FuzzTokenizer -fuzztime=30s ./internal/tokenizer
func FuzzTokenizer(f *testing.F) {
	seeds := []string{
		"",
		"a",
		",",
		"\n",
		"\r\n",
		"\r",
		"\"",
		"\"\"",
		"a,b,c",
		"\"quoted\"",
		"\"with,comma\"",
		"\"with\"\"quote\"",
		"a\nb\nc",
		"a,b\r\nc,d\r\n",
		"# comment\na,b",
		"café,naïve\n",
		"a,\"broken",
		"a\"b",
		"trailing,",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		opts := DefaultOptions()
		opts.Comment = '#'
		tok := New(strings.NewReader(input), opts)

		var prevChar, prevByte int64
		for i := 0; ; i++ {
			if i > 2*len(input)+64 {
				t.Fatalf("tokenizer did not terminate on %q", input)
			}
			token, err := tok.Next()
			if err != nil {
				if _, again := tok.Next(); again != err {
					t.Fatalf("error not sticky: %v then %v", err, again)
				}
				return
			}
			if token.CharEnd < prevChar || token.ByteEnd < prevByte {
				t.Fatalf("offsets moved backwards: %d/%d after %d/%d",
					token.CharEnd, token.ByteEnd, prevChar, prevByte)
			}
			prevChar, prevByte = token.CharEnd, token.ByteEnd
			if token.Kind == KindEOF {
				if token.ByteEnd != int64(len(input)) {
					t.Fatalf("EOF byte offset = %d, want %d", token.ByteEnd, len(input))
				}
				if want := int64(utf8.RuneCountInString(input)); token.CharEnd != want {
					t.Fatalf("EOF char offset = %d, want %d", token.CharEnd, want)
				}
				return
			}
		}
	})
}
