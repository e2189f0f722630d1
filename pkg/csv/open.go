package csv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// ParseString starts a parsing session over in-memory input.
func ParseString(s string, d Dialect, opts ...ParserOption) (*Parser, error) {
	return NewParser(strings.NewReader(s), d, opts...)
}

// ParseFile opens path and starts a parsing session over it. charset
// names the file's character encoding by IANA name ("latin1",
// "windows-1252", "utf-16le", ...); empty means UTF-8. Closing the
// session closes the file.
func ParseFile(path, charset string, d Dialect, opts ...ParserOption) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := decodeReader(f, f, charset)
	if err != nil {
		f.Close()
		return nil, err
	}
	p, err := NewParser(src, d, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return p, nil
}

// ParseURL fetches url and starts a parsing session over the response
// body. charset behaves as in ParseFile. Closing the session closes the
// body; abandoning a session without Close leaks the connection.
func ParseURL(ctx context.Context, url, charset string, d Dialect, opts ...ParserOption) (*Parser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("csv: fetch %s: unexpected status %s", url, resp.Status)
	}
	src, err := decodeReader(resp.Body, resp.Body, charset)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	p, err := NewParser(src, d, opts...)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	return p, nil
}

// decodeReader wraps r with a charset decoder when charset is non-empty,
// keeping c reachable so Parser.Close still releases the source.
func decodeReader(r io.Reader, c io.Closer, charset string) (io.Reader, error) {
	if charset == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("csv: unknown charset %q: %w", charset, err)
	}
	return &decodedReader{Reader: enc.NewDecoder().Reader(r), closer: c}, nil
}

// decodedReader pairs a decoding reader with the closer of its source.
type decodedReader struct {
	io.Reader
	closer io.Closer
}

func (d *decodedReader) Close() error {
	return d.closer.Close()
}
