package pretty

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// KeyValues renders aligned label/value pairs, one per line.
func KeyValues(w io.Writer, styles *Styles, pairs [][2]string) {
	width := 0
	for _, pair := range pairs {
		if len(pair[0]) > width {
			width = len(pair[0])
		}
	}
	for _, pair := range pairs {
		label := pair[0] + strings.Repeat(" ", width-len(pair[0]))
		fmt.Fprintf(w, "  %s  %s\n", styles.Label.Render(label), styles.Value.Render(pair[1]))
	}
}

// Row renders a numbered record line, truncated to the terminal width.
func Row(w io.Writer, styles *Styles, number int64, fields []string) {
	body := truncate(strings.Join(fields, "  "), TerminalWidth(w)-8)
	fmt.Fprintf(w, "%s  %s\n",
		styles.Number.Render(fmt.Sprintf("%6d", number)),
		styles.Field.Render(body))
}

// TerminalWidth returns the width of the terminal behind w, or a default
// when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// truncate shortens s to at most width runes, ellipsis included.
func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
