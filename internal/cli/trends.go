package cli

import (
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/plot"
	"github.com/imgajeed76/homeview/internal/widget"
	"github.com/spf13/cobra"
)

func newTrendsCmd() *cobra.Command {
	cmd := newWidgetCmd("trends", "Plot home value trends for selected metros",
		`Plot one line per selected metro over time.

The terminal backend draws braille charts; png and svg write image files
into plot.output_dir.

Examples:
  homeview trends --csv metro_zhvi.csv
  homeview trends --csv metro_zhvi.csv --metro "Austin, TX" --metro "Boise, ID" --no-tui
  homeview trends --csv metro_zhvi.csv --metro "Austin, TX" --plot svg --html trends.html`,
		buildTrends)
	cmd.Flags().StringArray("metro", nil, "Metro to plot (repeatable)")
	cmd.Flags().String("plot", "", "Chart backend (default: plot.backend)")
	_ = cmd.RegisterFlagCompletionFunc("plot", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return plot.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func buildTrends(cmd *cobra.Command, t *frame.Table, opts []widget.Option) (widget.Widget, func() error) {
	w := widget.NewTrends(t, opts...)
	return w, func() error {
		if !cmd.Flags().Changed("metro") {
			return nil
		}
		metros, _ := cmd.Flags().GetStringArray("metro")
		for _, m := range metros {
			if err := checkChoice("metro", m, w.MetroControl().Options()); err != nil {
				return err
			}
		}
		return w.Apply(widget.TrendsState{Metros: metros})
	}
}
