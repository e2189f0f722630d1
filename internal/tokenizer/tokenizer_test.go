package tokenizer

import (
	"errors"
	"strings"
	"testing"
)

type tok struct {
	kind  Kind
	value string
}

// collect drains the tokenizer into (kind, value) pairs, EOF included.
func collect(t *testing.T, input string, opts Options) []tok {
	t.Helper()
	tz := New(strings.NewReader(input), opts)
	var out []tok
	for {
		tk, err := tz.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, tok{tk.Kind, tk.Value})
		if tk.Kind == KindEOF {
			return out
		}
	}
}

func assertTokens(t *testing.T, got, want []tok) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v %q, want %v %q", i, got[i].kind, got[i].value, want[i].kind, want[i].value)
		}
	}
}

func TestNext_TokenStream(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty input",
			input: "",
			want:  []tok{{KindEOF, ""}},
		},
		{
			name:  "single field no newline",
			input: "abc",
			want:  []tok{{KindField, "abc"}, {KindEOF, ""}},
		},
		{
			name:  "two records",
			input: "a,b\nc,d\n",
			want: []tok{
				{KindField, "a"}, {KindField, "b"}, {KindEOR, ""},
				{KindField, "c"}, {KindField, "d"}, {KindEOR, ""},
				{KindEOF, ""},
			},
		},
		{
			name:  "final record without terminator",
			input: "a,b\nc,d",
			want: []tok{
				{KindField, "a"}, {KindField, "b"}, {KindEOR, ""},
				{KindField, "c"}, {KindField, "d"}, {KindEOF, ""},
			},
		},
		{
			name:  "empty fields",
			input: ",a,\n",
			want: []tok{
				{KindField, ""}, {KindField, "a"}, {KindField, ""},
				{KindEOR, ""}, {KindEOF, ""},
			},
		},
		{
			name:  "trailing delimiter at end of input",
			input: "a,",
			want:  []tok{{KindField, "a"}, {KindField, ""}, {KindEOF, ""}},
		},
		{
			name:  "empty line",
			input: "a\n\nb\n",
			want: []tok{
				{KindField, "a"}, {KindEOR, ""},
				{KindEOR, ""},
				{KindField, "b"}, {KindEOR, ""}, {KindEOF, ""},
			},
		},
		{
			name:  "crlf terminators",
			input: "a,b\r\nc\r\n",
			want: []tok{
				{KindField, "a"}, {KindField, "b"}, {KindEOR, ""},
				{KindField, "c"}, {KindEOR, ""}, {KindEOF, ""},
			},
		},
		{
			name:  "lone cr terminator",
			input: "a\rb",
			want: []tok{
				{KindField, "a"}, {KindEOR, ""},
				{KindField, "b"}, {KindEOF, ""},
			},
		},
		{
			name:  "quoted field",
			input: `"hello"`,
			want:  []tok{{KindField, "hello"}, {KindEOF, ""}},
		},
		{
			name:  "quoted field with delimiter and newline",
			input: "\"a,b\nc\",d\n",
			want: []tok{
				{KindField, "a,b\nc"}, {KindField, "d"},
				{KindEOR, ""}, {KindEOF, ""},
			},
		},
		{
			name:  "doubled quotes",
			input: `"say ""hi"""`,
			want:  []tok{{KindField, `say "hi"`}, {KindEOF, ""}},
		},
		{
			name:  "empty quoted field",
			input: `"",a`,
			want:  []tok{{KindField, ""}, {KindField, "a"}, {KindEOF, ""}},
		},
		{
			name:  "quoted field before terminator",
			input: "\"a\"\nb",
			want: []tok{
				{KindField, "a"}, {KindEOR, ""},
				{KindField, "b"}, {KindEOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input, DefaultOptions())
			assertTokens(t, got, tt.want)
		})
	}
}

func TestNext_CustomDelimiter(t *testing.T) {
	opts := Options{Comma: ';', Quote: '"'}
	got := collect(t, "a;b\n1,5;2\n", opts)
	want := []tok{
		{KindField, "a"}, {KindField, "b"}, {KindEOR, ""},
		{KindField, "1,5"}, {KindField, "2"}, {KindEOR, ""},
		{KindEOF, ""},
	}
	assertTokens(t, got, want)
}

func TestNext_QuoteDisabled(t *testing.T) {
	opts := Options{Comma: ','}
	got := collect(t, `"a",b`, opts)
	want := []tok{{KindField, `"a"`}, {KindField, "b"}, {KindEOF, ""}}
	assertTokens(t, got, want)
}

func TestNext_Comments(t *testing.T) {
	opts := Options{Comma: ',', Quote: '"', Comment: '#'}

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "comment line",
			input: "#note\na,b\n",
			want: []tok{
				{KindComment, "note"},
				{KindField, "a"}, {KindField, "b"}, {KindEOR, ""},
				{KindEOF, ""},
			},
		},
		{
			name:  "marker mid line is content",
			input: "a,#b\n",
			want: []tok{
				{KindField, "a"}, {KindField, "#b"},
				{KindEOR, ""}, {KindEOF, ""},
			},
		},
		{
			name:  "comment at end of input",
			input: "a\n#trailing",
			want: []tok{
				{KindField, "a"}, {KindEOR, ""},
				{KindComment, "trailing"}, {KindEOF, ""},
			},
		},
		{
			name:  "comment with crlf",
			input: "#x\r\na\n",
			want: []tok{
				{KindComment, "x"},
				{KindField, "a"}, {KindEOR, ""}, {KindEOF, ""},
			},
		},
		{
			name:  "empty comment",
			input: "#\na\n",
			want: []tok{
				{KindComment, ""},
				{KindField, "a"}, {KindEOR, ""}, {KindEOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input, opts)
			assertTokens(t, got, tt.want)
		})
	}
}

func TestNext_Escape(t *testing.T) {
	opts := Options{Comma: ',', Quote: '"', Escape: '\\'}

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "escaped delimiter in unquoted field",
			input: `a\,b,c`,
			want:  []tok{{KindField, "a,b"}, {KindField, "c"}, {KindEOF, ""}},
		},
		{
			name:  "escaped quote in quoted field",
			input: `"a\"b"`,
			want:  []tok{{KindField, `a"b`}, {KindEOF, ""}},
		},
		{
			name:  "escaped escape",
			input: `a\\b`,
			want:  []tok{{KindField, `a\b`}, {KindEOF, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input, opts)
			assertTokens(t, got, tt.want)
		})
	}
}

func TestNext_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    Options
		wantErr error
		line    int
		col     int
	}{
		{
			name:    "bare quote in unquoted field",
			input:   `ab"c`,
			opts:    DefaultOptions(),
			wantErr: ErrBareQuote,
			line:    1,
			col:     3,
		},
		{
			name:    "content after closing quote",
			input:   `"a"x`,
			opts:    DefaultOptions(),
			wantErr: ErrBareQuote,
			line:    1,
			col:     4,
		},
		{
			name:    "unterminated quote",
			input:   `a,"bc`,
			opts:    DefaultOptions(),
			wantErr: ErrUnterminatedQuote,
			line:    1,
			col:     3,
		},
		{
			name:    "unterminated quote spanning lines",
			input:   "\"a\nbc",
			opts:    DefaultOptions(),
			wantErr: ErrUnterminatedQuote,
			line:    1,
			col:     1,
		},
		{
			name:    "escape at end of input",
			input:   `a\`,
			opts:    Options{Comma: ',', Quote: '"', Escape: '\\'},
			wantErr: ErrTrailingEscape,
			line:    1,
			col:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := New(strings.NewReader(tt.input), tt.opts)

			var err error
			for i := 0; i < 16; i++ {
				if _, err = tz.Next(); err != nil {
					break
				}
			}
			if err == nil {
				t.Fatal("expected an error, got none")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}

			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error %T does not unwrap to *Error", err)
			}
			if lexErr.Line != tt.line || lexErr.Column != tt.col {
				t.Errorf("error at line %d column %d, want line %d column %d",
					lexErr.Line, lexErr.Column, tt.line, tt.col)
			}

			// The error is sticky.
			if _, again := tz.Next(); !errors.Is(again, tt.wantErr) {
				t.Errorf("second Next() after error = %v, want %v", again, tt.wantErr)
			}
		})
	}
}

func TestNext_EOFIsRepeatable(t *testing.T) {
	tz := New(strings.NewReader("a"), DefaultOptions())

	tk, err := tz.Next()
	if err != nil || tk.Kind != KindField {
		t.Fatalf("first token = %v, %v; want field", tk.Kind, err)
	}
	for i := 0; i < 3; i++ {
		tk, err := tz.Next()
		if err != nil {
			t.Fatalf("Next() after end: %v", err)
		}
		if tk.Kind != KindEOF {
			t.Fatalf("Next() after end = %v, want EOF", tk.Kind)
		}
	}
}

func TestNext_Offsets(t *testing.T) {
	// "é" is one rune, two bytes.
	tz := New(strings.NewReader("é,b\nc"), DefaultOptions())

	type ends struct {
		kind    Kind
		charEnd int64
		byteEnd int64
	}
	want := []ends{
		{KindField, 2, 3}, // é plus the consumed delimiter
		{KindField, 3, 4}, // b, terminator not yet consumed
		{KindEOR, 4, 5},
		{KindField, 5, 6},
		{KindEOF, 5, 6},
	}
	for i, w := range want {
		tk, err := tz.Next()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tk.Kind != w.kind || tk.CharEnd != w.charEnd || tk.ByteEnd != w.byteEnd {
			t.Errorf("token %d = %v chars %d bytes %d, want %v chars %d bytes %d",
				i, tk.Kind, tk.CharEnd, tk.ByteEnd, w.kind, w.charEnd, w.byteEnd)
		}
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindField:   "Field",
		KindComment: "Comment",
		KindEOR:     "EOR",
		KindEOF:     "EOF",
		Kind(99):    "Kind(99)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
