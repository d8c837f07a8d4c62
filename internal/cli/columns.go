package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/profgrid/internal/grid"
)

const tabPadding = 2

// NewColumnsCmd creates the columns command, which prints the resolved
// column layout: labels, widths and x-offsets.
func NewColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Show the resolved column layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd)
			layout, err := grid.NewLayout(cfg.ColumnSpec())
			if err != nil {
				return fmt.Errorf("building column layout: %w", err)
			}
			return printColumns(cmd, layout, cfg.Grid.LinkColumn)
		},
	}
}

func printColumns(cmd *cobra.Command, l *grid.Layout, linkColumn string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(w, "#\tID\tLabel\tWidth\tOffset\t")
	fmt.Fprintln(w, "-\t--\t-----\t-----\t------\t")
	for i := range l.Count() {
		note := ""
		if l.ID(i) == linkColumn {
			note = "link"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", i, l.ID(i), l.Label(i), l.WidthOf(i), l.XOffsetOf(i), note)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "\nTotal width: %d\n", l.TotalWidth())
	return err
}
