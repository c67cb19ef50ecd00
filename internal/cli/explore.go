package cli

import (
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/util"
	"github.com/imgajeed76/homeview/internal/widget"
	"github.com/spf13/cobra"
)

func newExploreCmd() *cobra.Command {
	cmd := newWidgetCmd("explore", "Show a canned summary of a table",
		`Show one of the Data Explorer reports for a table.

Reports: head, tail, shape, info, describe, columns.

Examples:
  homeview explore --csv home_values.csv
  homeview explore --csv home_values.csv --report describe --no-tui
  homeview explore --parquet zhvi.parquet --report info --html info.html`,
		buildExplorer)
	cmd.Flags().String("report", "", "Report to show (head, tail, shape, info, describe, columns)")
	_ = cmd.RegisterFlagCompletionFunc("report", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return widget.ReportNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func buildExplorer(cmd *cobra.Command, t *frame.Table, opts []widget.Option) (widget.Widget, func() error) {
	e := widget.NewExplorer(t, opts...)
	return e, func() error {
		name, _ := cmd.Flags().GetString("report")
		if name == "" {
			return nil
		}
		r, err := widget.ParseReport(name)
		if err != nil {
			return util.InvalidChoiceError("report", name, widget.ReportNames())
		}
		return e.ReportControl().Set(e.Label(r))
	}
}
