package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/profgrid/internal/export"
	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/logging"
	"github.com/rshade/profgrid/internal/profile"
)

// ErrInvalidRows is returned for a malformed --rows value.
var ErrInvalidRows = errors.New("invalid row selection")

// NewExportCmd creates the export command, which writes data files as CSV
// using the configured columns.
func NewExportCmd() *cobra.Command {
	var (
		output string
		rows   string
	)

	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Export profile datasets as CSV",
		Long: `Writes the records of the given files as CSV with one column per configured
grid column. List values are joined with "; ".`,
		Example: `  profgrid export results.json > all.csv
  profgrid export results.json --rows 1-10,15 -o picked.csv`,
		Args: requireFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, output, rows)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&rows, "rows", "", "1-based rows and ranges to export, e.g. 1-10,15 (default all)")

	return cmd
}

func runExport(cmd *cobra.Command, paths []string, output, rowSpec string) error {
	ctx := cmd.Context()
	cfg := configFrom(cmd)

	layout, err := grid.NewLayout(cfg.ColumnSpec())
	if err != nil {
		return fmt.Errorf("building column layout: %w", err)
	}

	ds, err := profile.Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	rows, err := ParseRows(rowSpec, ds.Len())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "-" && output != "" {
		f, ferr := os.Create(output)
		if ferr != nil {
			return fmt.Errorf("creating %s: %w", output, ferr)
		}
		defer f.Close()
		w = f
	}

	if err = export.WriteCSV(w, ds, layout, rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("output", output).
		Int("records", ds.Len()).
		Int("rows", len(rows)).
		Msg("export finished")
	return nil
}

// ParseRows turns a 1-based selection such as "1-3,7" into sorted, distinct
// 0-based row indices. An empty spec returns nil, meaning all rows.
func ParseRows(spec string, count int) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	out := []int{}
	for part := range strings.SplitSeq(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := parseRow(lo, count)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidRows, part, err)
		}
		to := from
		if isRange {
			if to, err = parseRow(hi, count); err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidRows, part, err)
			}
		}
		if to < from {
			return nil, fmt.Errorf("%w %q: range is reversed", ErrInvalidRows, part)
		}
		for r := from; r <= to; r++ {
			if _, dup := seen[r]; !dup {
				seen[r] = struct{}{}
				out = append(out, r-1)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

func parseRow(s string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("row %d outside 1-%d", n, count)
	}
	return n, nil
}
