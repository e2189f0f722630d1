package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Fati1996i/commons-csv/internal/logging"
	"github.com/Fati1996i/commons-csv/internal/ui/pretty"
	"github.com/Fati1996i/commons-csv/pkg/csv"
)

type headersFlags struct {
	duplicates string
}

func newHeadersCommand(global *globalFlags) *cobra.Command {
	flags := &headersFlags{}

	cmd := &cobra.Command{
		Use:   "headers [input]",
		Short: "Print the resolved header of a CSV input",
		Long: `Print the resolved header names of a CSV input, one per column.

Unless a header mode is set explicitly, the first record is read as the
header. Duplicate handling defaults to disallow, so repeated names are
reported as an error instead of silently shadowing each other.

Examples:
  csvtool headers data.csv
  csvtool headers --duplicates allow-all data.csv
  csvtool headers --dialect profile.yaml data.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.duplicates, "duplicates", "",
		"duplicate header handling: disallow, allow-all, allow-empty")

	return cmd
}

func runHeaders(cmd *cobra.Command, args []string, global *globalFlags, flags *headersFlags) error {
	logger := logging.Default()

	d, err := resolveDialect(cmd, &global.dialect)
	if err != nil {
		return err
	}
	// Without a configured header mode there is nothing to resolve, so
	// default to deriving the header from the first record.
	if d.Header == csv.HeaderNone {
		d.Header = csv.HeaderFromFirstRecord
		d.SkipHeaderRecord = true
	}
	switch flags.duplicates {
	case "":
	case "disallow":
		d.DuplicateHeaders = csv.DuplicatesDisallow
	case "allow-all":
		d.DuplicateHeaders = csv.DuplicatesAllowAll
	case "allow-empty":
		d.DuplicateHeaders = csv.DuplicatesAllowEmpty
	default:
		return fmt.Errorf("--duplicates: unknown mode %q (want disallow, allow-all or allow-empty)", flags.duplicates)
	}

	input := inputArg(args)
	logger.Debug("resolving header",
		logging.FieldPath, input,
		logging.FieldHeader, d.Header.String(),
	)

	p, err := openInput(cmd.Context(), input, global.dialect.charset, d)
	if err != nil {
		return err
	}
	defer p.Close()

	names := p.Header().Names()
	if len(names) == 0 {
		return fmt.Errorf("no header resolved for %s", input)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, os.Stdout))
	pairs := make([][2]string, 0, len(names))
	for i, name := range names {
		pairs = append(pairs, [2]string{strconv.Itoa(i + 1), name})
	}
	pretty.KeyValues(os.Stdout, styles, pairs)

	return nil
}
