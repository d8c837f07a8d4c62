package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/profgrid/internal/config"
	"github.com/rshade/profgrid/internal/export"
	"github.com/rshade/profgrid/internal/grid"
	"github.com/rshade/profgrid/internal/logging"
	"github.com/rshade/profgrid/internal/profile"
	"github.com/rshade/profgrid/internal/tui"
)

const (
	defaultPlainRows  = 50
	defaultPlainWidth = 120
)

type viewFlags struct {
	watch      bool
	plain      bool
	rows       int
	scrollLeft int
}

// NewViewCmd creates the view command, which shows one or more data files in
// the interactive grid, or prints them when stdout is not a terminal.
func NewViewCmd() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "view FILE...",
		Short: "Show profile datasets in the grid",
		Long: `Loads JSON, NDJSON, YAML or Parquet files and shows their records in a
virtualized grid. Multiple files are concatenated in argument order.

When stdout is not a terminal, or --plain is given, the header and the first
rows are printed once instead.`,
		Example: `  profgrid view results.json
  profgrid view a.ndjson b.ndjson --watch
  profgrid view results.parquet --plain --rows 20`,
		Args: requireFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload when an input file changes")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print once instead of starting the interactive grid")
	cmd.Flags().IntVar(&flags.rows, "rows", defaultPlainRows, "number of rows to print in plain mode (0 = all)")
	cmd.Flags().IntVar(&flags.scrollLeft, "scroll-left", 0, "horizontal offset in cells for plain mode")

	return cmd
}

func runView(cmd *cobra.Command, paths []string, flags viewFlags) error {
	ctx := cmd.Context()
	cfg := configFrom(cmd)
	log := logging.FromContext(ctx).With().Str("component", "view").Logger()

	layout, err := grid.NewLayout(cfg.ColumnSpec())
	if err != nil {
		return fmt.Errorf("building column layout: %w", err)
	}

	ds, err := profile.Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	log.Info().Ctx(ctx).Int("records", ds.Len()).Strs("paths", paths).Msg("dataset loaded")

	out := cmd.OutOrStdout()
	outFile, _ := out.(*os.File)
	inFile, _ := cmd.InOrStdin().(*os.File)

	if tui.DetectOutputMode(flags.plain, inFile, outFile) == tui.OutputModePlain {
		return renderPlain(out, outFile, ds, layout, cfg, flags)
	}

	watch := flags.watch || cfg.Data.Watch
	return runInteractive(ctx, cfg, layout, ds, paths, watch)
}

func renderPlain(
	w io.Writer,
	f *os.File,
	ds *profile.Dataset,
	layout *grid.Layout,
	cfg *config.Config,
	flags viewFlags,
) error {
	text := tui.RenderPlain(ds, tui.PlainOptions{
		Layout:     layout,
		RowHeight:  cfg.Grid.RowHeight,
		Width:      tui.TerminalWidth(f, defaultPlainWidth),
		Rows:       flags.rows,
		ScrollLeft: flags.scrollLeft,
		Logger:     logger,
	})
	shown := ds.Len()
	if flags.rows > 0 {
		shown = min(shown, flags.rows)
	}
	_, err := fmt.Fprintf(w, "%s\n\n%d of %d records\n", text, shown, ds.Len())
	return err
}

func runInteractive(
	ctx context.Context,
	cfg *config.Config,
	layout *grid.Layout,
	ds *profile.Dataset,
	paths []string,
	watch bool,
) error {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "tui")

	opts := tui.AppOptions{
		Title:   strings.Join(baseNames(paths), ", "),
		Dataset: ds,
		Grid: tui.GridOptions{
			Layout:     layout,
			RowHeight:  cfg.Grid.RowHeight,
			LinkColumn: cfg.Grid.LinkColumn,
			WheelStep:  cfg.Grid.WheelStep,
			Overscan:   cfg.Grid.Overscan,
			Logger:     log,
		},
		Load: func(ctx context.Context) (*profile.Dataset, error) {
			return profile.Load(ctx, paths...)
		},
		Export: func(ds *profile.Dataset, layout *grid.Layout, rows []int) (string, error) {
			return export.ToFile(cfg.Data.ExportDir, ds, layout, rows, time.Now())
		},
	}

	if watch {
		w, err := profile.NewWatcher(paths, cfg.Data.Debounce, log)
		if err != nil {
			return fmt.Errorf("watching input files: %w", err)
		}
		if err = w.Start(ctx); err != nil {
			return fmt.Errorf("watching input files: %w", err)
		}
		defer w.Stop()
		opts.Changes = w.Changes()
	}

	p := tea.NewProgram(
		tui.NewAppModel(ctx, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running grid: %w", err)
	}
	return nil
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
