package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/imgajeed76/homeview/internal/config"
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/plot"
	"github.com/imgajeed76/homeview/internal/source"
	"github.com/imgajeed76/homeview/internal/ui"
	"github.com/imgajeed76/homeview/internal/ui/display"
	"github.com/imgajeed76/homeview/internal/ui/tui"
	"github.com/imgajeed76/homeview/internal/util"
	"github.com/imgajeed76/homeview/internal/widget"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loadConfig reads the file named by --config, or the default path.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, util.NewError("Cannot read config file").
			WithContext(path).
			WithSuggestion("homeview config --list   # Check the current settings").
			Wrap(err)
	}
	return cfg, path, nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("csv", "", "Load a CSV file")
	cmd.Flags().String("parquet", "", "Load a Parquet file")
	cmd.Flags().String("sqlite", "", "Query a SQLite database file (needs --query)")
	cmd.Flags().String("dsn", "", "Query a PostgreSQL database (needs --query; default: source.dsn)")
	cmd.Flags().String("query", "", "SQL query selecting the table rows")
	cmd.Flags().Duration("timeout", 0, "Database query timeout (default: source.timeout)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-tui", false, "Render once to stdout instead of opening the interactive view")
	cmd.Flags().String("html", "", "Render once into a standalone HTML file")
}

// sourceSpec reads the source flags. The configured DSN is used only for
// a bare --query.
func sourceSpec(cmd *cobra.Command, cfg *config.Config) (source.Spec, error) {
	var s source.Spec
	s.CSV, _ = cmd.Flags().GetString("csv")
	s.Parquet, _ = cmd.Flags().GetString("parquet")
	s.SQLite, _ = cmd.Flags().GetString("sqlite")
	s.DSN, _ = cmd.Flags().GetString("dsn")
	s.Query, _ = cmd.Flags().GetString("query")
	s.Timeout, _ = cmd.Flags().GetDuration("timeout")

	if s.Query != "" && s.CSV == "" && s.Parquet == "" && s.SQLite == "" && s.DSN == "" {
		s.DSN = cfg.DSN()
	}
	if s.Timeout == 0 {
		d, err := cfg.QueryTimeout()
		if err != nil {
			return s, err
		}
		s.Timeout = d
	}
	return s, nil
}

// loadTable opens the table named by the source flags.
func loadTable(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*frame.Table, string, error) {
	spec, err := sourceSpec(cmd, cfg)
	if err != nil {
		return nil, "", err
	}
	kind, err := spec.Kind()
	switch {
	case errors.Is(err, util.ErrNoSource):
		return nil, "", util.NoSourceError(cmd.Name())
	case errors.Is(err, util.ErrQueryRequired):
		return nil, "", util.MissingArgumentError("query", fmt.Sprintf("homeview %s --sqlite homes.db --query 'SELECT * FROM home_values'", cmd.Name()))
	case err != nil:
		return nil, "", util.NewError("Conflicting table sources").
			WithMessage("Pass exactly one of --csv, --parquet, --sqlite or --dsn").
			Wrap(err)
	}

	spinner := ui.NewSpinner(fmt.Sprintf("Loading %s table", kind))
	spinner.Start()
	start := time.Now()
	t, err := source.Open(ctx, spec)
	if err != nil {
		spinner.Stop()
		if errors.Is(err, source.ErrConnect) {
			return nil, "", util.DatabaseConnectionError("postgres", err)
		}
		return nil, "", util.SourceError(spec.Name(), err)
	}
	rows, cols := t.Shape()
	spinner.Success(fmt.Sprintf("Loaded %s: %s %s × %d %s in %s",
		spec.Name(),
		util.FormatInt(rows), util.Plural(rows, "row", "rows"),
		cols, util.Plural(cols, "column", "columns"),
		time.Since(start).Round(time.Millisecond)))
	return t, spec.Name(), nil
}

// widgetOptions turns config and --plot into widget options.
func widgetOptions(ctx context.Context, cmd *cobra.Command, cfg *config.Config) ([]widget.Option, error) {
	backend := cfg.Plot.Backend
	if cmd.Flags().Lookup("plot") != nil {
		if b, _ := cmd.Flags().GetString("plot"); b != "" {
			backend = b
		}
	}
	if cmd.Flags().Changed("plot") {
		if err := checkChoice("plot", backend, plot.Names()); err != nil {
			return nil, err
		}
	}

	plotOpts := plot.Options{OutputDir: cfg.Plot.OutputDir}
	if w, h, ok := terminalSize(); ok {
		plotOpts.Columns = max(40, w-40)
		plotOpts.Rows = max(10, h/2)
	}

	return []widget.Option{
		widget.WithContext(ctx),
		widget.WithHeadRows(cfg.Display.HeadRows),
		widget.WithPreviewRows(cfg.Display.PreviewRows),
		widget.WithMaxEntities(cfg.Display.MaxEntities),
		widget.WithListRows(cfg.Display.ListRows),
		widget.WithChartSize(cfg.Plot.Width, cfg.Plot.Height),
		widget.WithBackend(backend, plotOpts),
	}, nil
}

func terminalSize() (int, int, bool) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// checkChoice rejects a flag value outside options.
func checkChoice(flag, got string, options []string) error {
	if slices.Contains(options, got) {
		return nil
	}
	return util.InvalidChoiceError(flag, got, options)
}

// interactive reports whether the widget should open in the TUI.
func interactive(cmd *cobra.Command) bool {
	if noTUI, _ := cmd.Flags().GetBool("no-tui"); noTUI {
		return false
	}
	if html, _ := cmd.Flags().GetString("html"); html != "" {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(out.Fd())) {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// present applies the flag state to w, then shows it in the TUI or
// renders it once.
func present(cmd *cobra.Command, title string, w widget.Widget, apply func() error) error {
	if p := w.Problem(); p != nil {
		ui.Verbosef("%s is awaiting input: %s", w.Name(), p.Kind)
	} else if err := apply(); err != nil {
		return err
	}

	if interactive(cmd) {
		return tui.Run(w)
	}

	if path, _ := cmd.Flags().GetString("html"); path != "" {
		return writeHTML(path, title, w)
	}
	return display.NewTerminal(cmd.OutOrStdout()).Show(w.Output().Blocks())
}

func writeHTML(path, title string, w widget.Widget) error {
	doc := display.NewHTML(title)
	if err := doc.Show(w.Output().Blocks()); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ui.Verbosef("wrote %s", path)
	return nil
}
