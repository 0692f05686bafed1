package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gridscope/gridscope/internal/config"
	"github.com/gridscope/gridscope/internal/ingest"
	"github.com/gridscope/gridscope/internal/logging"
	"github.com/gridscope/gridscope/internal/table"
	"github.com/gridscope/gridscope/internal/tui"
)

// viewOptions holds the view command's flag values.
type viewOptions struct {
	height        float64
	rowHeight     float64
	overscan      int
	selectable    bool
	noInteractive bool
}

func newViewCmd() *cobra.Command {
	opts := viewOptions{selectable: true}

	cmd := &cobra.Command{
		Use:   "view <file>...",
		Short: "Browse one or more data files as a table",
		Long: "View loads the given CSV, TSV, or JSON files, merges them by column " +
			"name, and opens an interactive table. When stdout is not a terminal " +
			"the table is printed as plain text instead.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.height, "height", 0, "table height (0 = config default)")
	cmd.Flags().Float64Var(&opts.rowHeight, "row-height", 0, "row height (0 = config default)")
	cmd.Flags().IntVar(&opts.overscan, "overscan", -1, "rows rendered beyond the visible range (-1 = config default)")
	cmd.Flags().BoolVar(&opts.selectable, "selectable", true, "enable row selection")
	cmd.Flags().BoolVar(&opts.noInteractive, "no-interactive", false, "print the table instead of opening the TUI")

	return cmd
}

func runView(cmd *cobra.Command, args []string, opts viewOptions) error {
	ctx := cmd.Context()
	cfg := configFromContext(ctx).Table
	applyTableFlags(&cfg, opts)

	interactive := !opts.noInteractive && isTerminal(os.Stdout)
	title := viewTitle(args)

	logging.FromContext(ctx).Info().
		Strs("files", args).
		Bool("interactive", interactive).
		Msg("loading dataset")

	if !interactive {
		engine, err := buildEngine(ctx, args, cfg, opts)
		if err != nil {
			return err
		}
		return tui.RenderPlain(cmd.OutOrStdout(), engine)
	}

	// The shell drives the viewport in terminal rows, one unit per row.
	cfg.RowHeight = 1

	model := tui.NewWithLoading(ctx, title, func(ctx context.Context) (*table.Engine[ingest.Row], error) {
		return buildEngine(ctx, args, cfg, opts)
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running interactive table: %w", err)
	}
	if m, ok := final.(*tui.Model[ingest.Row]); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// buildEngine loads and merges the files and constructs the table engine.
// Interactive use overrides the configured dimensions: one terminal row is
// one size unit, and the shell resizes the viewport itself.
func buildEngine(
	ctx context.Context,
	files []string,
	cfg config.TableConfig,
	opts viewOptions,
) (*table.Engine[ingest.Row], error) {
	ds, err := ingest.LoadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	log.Debug().
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).
		Msg("dataset loaded")

	return table.New(
		table.WithData(ds.Rows),
		table.WithColumns(ingest.BuildColumns(ds)),
		table.WithHeight[ingest.Row](cfg.Height),
		table.WithRowHeight[ingest.Row](cfg.RowHeight),
		table.WithOverscan[ingest.Row](cfg.Overscan),
		table.WithSearchable[ingest.Row](true),
		table.WithFilterable[ingest.Row](true),
		table.WithSortable[ingest.Row](true),
		table.WithSelectable[ingest.Row](opts.selectable),
		table.WithLogger[ingest.Row](*log),
	)
}

// applyTableFlags overlays explicit flag values on the config defaults.
func applyTableFlags(cfg *config.TableConfig, opts viewOptions) {
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.rowHeight > 0 {
		cfg.RowHeight = opts.rowHeight
	}
	if opts.overscan >= 0 {
		cfg.Overscan = opts.overscan
	}
}

// viewTitle derives the TUI title from the input file names.
func viewTitle(files []string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, " + ")
}
