package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/Fati1996i/commons-csv/internal/config"
	"github.com/Fati1996i/commons-csv/pkg/csv"
)

// dialectFlags holds the dialect flags shared by all subcommands.
type dialectFlags struct {
	path       string
	delimiter  string
	comment    string
	header     string
	trim       bool
	keepEmpty  bool
	nullString string
	charset    string
}

// addDialectFlags registers the shared dialect flags on the root command.
func addDialectFlags(cmd *cobra.Command, flags *dialectFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.path, "dialect", "", "path to a dialect YAML file")
	pf.StringVarP(&flags.delimiter, "delimiter", "d", "", `field delimiter (single character, or "tab")`)
	pf.StringVar(&flags.comment, "comment", "", "comment marker (single character)")
	pf.StringVar(&flags.header, "header", "", "header mode: none, first-record")
	pf.BoolVar(&flags.trim, "trim", false, "trim surrounding whitespace from fields")
	pf.BoolVar(&flags.keepEmpty, "keep-empty-lines", false, "read empty lines as single-field records")
	pf.StringVar(&flags.nullString, "null", "", "input string to read as an empty field")
	pf.StringVar(&flags.charset, "charset", "", "character set for file and URL inputs (for example latin1)")
}

// resolveDialect builds the effective dialect from an optional dialect
// file overlaid with any explicitly set flags. Flags win over the file.
func resolveDialect(cmd *cobra.Command, flags *dialectFlags) (csv.Dialect, error) {
	d := csv.DefaultDialect()

	if flags.path != "" {
		loaded, err := config.Load(flags.path)
		if err != nil {
			return csv.Dialect{}, fmt.Errorf("load dialect %s: %w", flags.path, err)
		}
		d = loaded
	}

	set := cmd.Flags().Changed

	if set("delimiter") {
		r, err := flagRune("delimiter", flags.delimiter)
		if err != nil {
			return csv.Dialect{}, err
		}
		d.Comma = r
	}
	if set("comment") {
		r, err := flagRune("comment", flags.comment)
		if err != nil {
			return csv.Dialect{}, err
		}
		d.Comment = r
	}
	if set("header") {
		switch flags.header {
		case "none":
			d.Header = csv.HeaderNone
			d.HeaderNames = nil
			d.SkipHeaderRecord = false
		case "first-record":
			d.Header = csv.HeaderFromFirstRecord
			d.HeaderNames = nil
			d.SkipHeaderRecord = true
		default:
			return csv.Dialect{}, fmt.Errorf("--header: unknown mode %q (want none or first-record)", flags.header)
		}
	}
	if set("trim") {
		d.Trim = flags.trim
	}
	if set("keep-empty-lines") {
		d.IgnoreEmptyLines = !flags.keepEmpty
	}
	if set("null") {
		d.NullString = flags.nullString
	}

	if err := d.Validate(); err != nil {
		return csv.Dialect{}, err
	}
	return d, nil
}

// flagRune converts a single-character flag value into a rune.
func flagRune(name, value string) (rune, error) {
	if value == "tab" || value == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("--%s: want a single character, got %q", name, value)
	}
	return r, nil
}

// inputArg returns the positional input argument, defaulting to stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// openInput opens a parsing session for a positional input argument.
// The argument may be a file path, an http(s) URL, or "-" for stdin.
// The charset flag applies to file and URL inputs only.
func openInput(ctx context.Context, input, charset string, d csv.Dialect, opts ...csv.ParserOption) (*csv.Parser, error) {
	switch {
	case input == "-":
		return csv.NewParser(os.Stdin, d, opts...)
	case isURL(input):
		return csv.ParseURL(ctx, input, charset, d, opts...)
	default:
		return csv.ParseFile(input, charset, d, opts...)
	}
}
