package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fati1996i/commons-csv/internal/logging"
	"github.com/Fati1996i/commons-csv/internal/ui/pretty"
	"github.com/Fati1996i/commons-csv/pkg/csv"
)

type headFlags struct {
	records int
}

func newHeadCommand(global *globalFlags) *cobra.Command {
	flags := &headFlags{}

	cmd := &cobra.Command{
		Use:   "head [input]",
		Short: "Print the first records of a CSV input",
		Long:  headLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHead(cmd, args, global, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.records, "records", "n", 10, "number of records to print")

	return cmd
}

const headLongDescription = `Print the first records of a CSV input with their record numbers.

The input may be a file path, an http(s) URL, or "-" for standard
input. Reading stops as soon as enough records have been seen, so
heading a large file stays cheap.

Examples:
  csvtool head data.csv                  # First 10 records
  csvtool head -n 3 data.csv             # First 3 records
  csvtool head -d ';' data.csv           # Semicolon-delimited input
  csvtool head --header first-record data.csv
  cat data.csv | csvtool head -`

func runHead(cmd *cobra.Command, args []string, global *globalFlags, flags *headFlags) error {
	logger := logging.Default()

	d, err := resolveDialect(cmd, &global.dialect)
	if err != nil {
		return err
	}

	input := inputArg(args)
	logger.Debug("reading input",
		logging.FieldPath, input,
		logging.FieldDelimiter, string(d.Comma),
	)

	p, err := openInput(cmd.Context(), input, global.dialect.charset, d)
	if err != nil {
		return err
	}
	defer p.Close()

	styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, os.Stdout))

	printed := 0
	for printed < flags.records {
		rec, err := p.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var fieldErr *csv.FieldCountError
			if !errors.As(err, &fieldErr) {
				return err
			}
			// The offending record is still delivered; flag it and go on.
			logger.Warn("field count mismatch",
				logging.FieldRecord, fieldErr.RecordNumber,
				logging.FieldFields, fieldErr.Got,
			)
		}
		if rec.IsComment() {
			fmt.Fprintln(os.Stdout, styles.Comment.Render("# "+rec.Comment()))
			continue
		}
		pretty.Row(os.Stdout, styles, rec.Number(), rec.Fields())
		printed++
	}

	return nil
}
