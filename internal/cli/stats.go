package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fati1996i/commons-csv/internal/logging"
	"github.com/Fati1996i/commons-csv/internal/ui/pretty"
	"github.com/Fati1996i/commons-csv/pkg/csv"
)

// sniffSampleSize is how much of a file the sniffer gets to look at.
const sniffSampleSize = 64 * 1024

type statsFlags struct {
	rows  string
	sniff bool
}

func newStatsCommand(global *globalFlags) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [input]",
		Short: "Summarize a CSV input",
		Long: `Read a CSV input to the end and summarize it: record and comment
counts, field widths, and the final character and byte offsets.

Field counts are checked against the first record, so ragged rows show
up as mismatches without stopping the run.

Examples:
  csvtool stats data.csv
  csvtool stats --rows 100:200 data.csv   # Only records 100 through 200
  csvtool stats --sniff data.csv          # Detect the dialect first`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.rows, "rows", "",
		"record number range to keep, as from:to (either side open)")
	cmd.Flags().BoolVar(&flags.sniff, "sniff", false,
		"detect the dialect from the input (overrides dialect flags)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, global *globalFlags, flags *statsFlags) error {
	logger := logging.Default()
	input := inputArg(args)

	var d csv.Dialect
	var err error
	if flags.sniff {
		if input == "-" || isURL(input) {
			return fmt.Errorf("--sniff requires a file input")
		}
		sample, err := readSample(input)
		if err != nil {
			return err
		}
		d = csv.NewSniffer(sample).Dialect()
		logger.Debug("sniffed dialect",
			logging.FieldDelimiter, printableRune(d.Comma),
			logging.FieldHeader, d.Header.String(),
		)
	} else {
		d, err = resolveDialect(cmd, &global.dialect)
		if err != nil {
			return err
		}
	}
	d.EnforceFieldCount = true

	if flags.rows != "" {
		from, to, err := parseRowRange(flags.rows)
		if err != nil {
			return err
		}
		d.RowFilter = func(n int64) bool {
			return n >= from && (to == 0 || n <= to)
		}
	}

	p, err := openInput(cmd.Context(), input, global.dialect.charset, d, csv.WithByteTracking())
	if err != nil {
		return err
	}
	defer p.Close()

	var records, comments, mismatches int64
	minFields, maxFields := 0, 0
	for {
		rec, err := p.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var fieldErr *csv.FieldCountError
			if !errors.As(err, &fieldErr) {
				return err
			}
			mismatches++
		}
		if rec.IsComment() {
			comments++
			continue
		}
		records++
		if minFields == 0 || rec.Len() < minFields {
			minFields = rec.Len()
		}
		if rec.Len() > maxFields {
			maxFields = rec.Len()
		}
	}

	pairs := [][2]string{
		{"input", input},
		{"delimiter", printableRune(d.Comma)},
		{"header", d.Header.String()},
	}
	if n := p.Header().Len(); n > 0 {
		pairs = append(pairs, [2]string{"columns", strconv.Itoa(n)})
	}
	pairs = append(pairs, [2]string{"records", strconv.FormatInt(records, 10)})
	if comments > 0 {
		pairs = append(pairs, [2]string{"comments", strconv.FormatInt(comments, 10)})
	}
	if mismatches > 0 {
		pairs = append(pairs, [2]string{"ragged records", strconv.FormatInt(mismatches, 10)})
	}
	if records > 0 {
		width := strconv.Itoa(minFields)
		if maxFields != minFields {
			width = fmt.Sprintf("%d to %d", minFields, maxFields)
		}
		pairs = append(pairs, [2]string{"fields per record", width})
	}
	pairs = append(pairs,
		[2]string{"characters", strconv.FormatInt(p.CharacterOffset(), 10)},
		[2]string{"bytes", strconv.FormatInt(p.ByteOffset(), 10)},
	)

	styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, os.Stdout))
	pretty.KeyValues(os.Stdout, styles, pairs)

	return nil
}

// parseRowRange parses a from:to record range. Either side may be left
// open, and a bare number selects that single record.
func parseRowRange(s string) (from, to int64, err error) {
	parse := func(part string) (int64, error) {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("--rows: want positive record numbers as from:to, got %q", s)
		}
		return n, nil
	}

	before, after, found := strings.Cut(s, ":")
	if !found {
		n, err := parse(before)
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	}

	from = 1
	if before != "" {
		if from, err = parse(before); err != nil {
			return 0, 0, err
		}
	}
	if after != "" {
		if to, err = parse(after); err != nil {
			return 0, 0, err
		}
		if to < from {
			return 0, 0, fmt.Errorf("--rows: range %q is empty", s)
		}
	}
	return from, to, nil
}

// readSample reads the first chunk of a file for dialect detection.
func readSample(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, sniffSampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	return string(buf[:n]), nil
}

func printableRune(r rune) string {
	switch r {
	case 0:
		return "none"
	case '\t':
		return "tab"
	default:
		return string(r)
	}
}
