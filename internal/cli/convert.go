package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fati1996i/commons-csv/internal/logging"
	"github.com/Fati1996i/commons-csv/pkg/csv"
)

type convertFlags struct {
	output       string
	outDelimiter string
	crlf         bool
	alwaysQuote  bool
	toJSON       bool
}

func newConvertCommand(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Rewrite a CSV input in another dialect or as JSON",
		Long: `Read a CSV input and write it back out, either as CSV in a different
dialect or as JSON.

CSV output re-quotes fields as needed for the output delimiter, and a
header consumed from the input is written back as the first row. JSON
output produces an array of objects when a header is resolved and an
array of arrays otherwise.

Examples:
  csvtool convert -d ';' data.csv                  # Semicolons to commas
  csvtool convert --out-delimiter tab data.csv     # Commas to tabs
  csvtool convert --crlf -o out.csv data.csv       # CRLF line endings
  csvtool convert --header first-record --json data.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&flags.outDelimiter, "out-delimiter", "", `output field delimiter (single character, or "tab")`)
	cmd.Flags().BoolVar(&flags.crlf, "crlf", false, "terminate output records with \\r\\n")
	cmd.Flags().BoolVar(&flags.alwaysQuote, "always-quote", false, "quote every output field")
	cmd.Flags().BoolVar(&flags.toJSON, "json", false, "write JSON instead of CSV")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, global *globalFlags, flags *convertFlags) error {
	logger := logging.Default()

	d, err := resolveDialect(cmd, &global.dialect)
	if err != nil {
		return err
	}

	input := inputArg(args)
	p, err := openInput(cmd.Context(), input, global.dialect.charset, d)
	if err != nil {
		return err
	}
	defer p.Close()

	var out io.Writer = os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		logger.Debug("writing output", logging.FieldOutput, flags.output)
	}

	if flags.toJSON {
		return convertJSON(p, out)
	}
	return convertCSV(cmd, p, out, d, flags)
}

func convertCSV(cmd *cobra.Command, p *csv.Parser, out io.Writer, d csv.Dialect, flags *convertFlags) error {
	w := csv.NewDialectWriter(out, d)
	if cmd.Flags().Changed("out-delimiter") {
		r, err := flagRune("out-delimiter", flags.outDelimiter)
		if err != nil {
			return err
		}
		w.Comma = r
	}
	w.UseCRLF = flags.crlf
	w.AlwaysQuote = flags.alwaysQuote

	// A header row consumed during resolution is restored up front.
	if d.SkipHeaderRecord && p.Header().Len() > 0 {
		if err := w.Write(p.Header().Names()); err != nil {
			return err
		}
	}

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
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func convertJSON(p *csv.Parser, out io.Writer) error {
	buffered := bufio.NewWriter(out)
	enc := json.NewEncoder(buffered)
	enc.SetIndent("", "  ")

	named := p.Header().Len() > 0

	var err error
	if named {
		rows := make([]map[string]string, 0)
		err = eachDataRecord(p, func(rec *csv.Record) {
			rows = append(rows, rec.AsMap())
		})
		if err == nil {
			err = enc.Encode(rows)
		}
	} else {
		rows := make([][]string, 0)
		err = eachDataRecord(p, func(rec *csv.Record) {
			rows = append(rows, rec.Fields())
		})
		if err == nil {
			err = enc.Encode(rows)
		}
	}
	if err != nil {
		return err
	}
	return buffered.Flush()
}

// eachDataRecord invokes fn for every data record, skipping comments
// and a re-emitted header row, and tolerating field count mismatches.
func eachDataRecord(p *csv.Parser, fn func(*csv.Record)) error {
	for {
		rec, err := p.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var fieldErr *csv.FieldCountError
			if !errors.As(err, &fieldErr) {
				return err
			}
		}
		if rec.IsComment() || rec.IsHeader() {
			continue
		}
		fn(rec)
	}
}
