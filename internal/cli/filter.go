package cli

import (
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/widget"
	"github.com/spf13/cobra"
)

func newFilterCmd() *cobra.Command {
	cmd := newWidgetCmd("filter", "Filter rows by state and value range",
		`Filter a table by state and an inclusive home value range.

The state column is StateName (or State); the value column is HomeValue
or else the first numeric column. --min and --max are clamped to the
value range of the table.

Examples:
  homeview filter --csv home_values.csv
  homeview filter --csv home_values.csv --state CA --min 300000 --max 900000 --no-tui`,
		buildMarket)
	cmd.Flags().String("state", "", "State to keep (All keeps every state)")
	cmd.Flags().Int("min", 0, "Minimum value (inclusive)")
	cmd.Flags().Int("max", 0, "Maximum value (inclusive)")
	return cmd
}

func buildMarket(cmd *cobra.Command, t *frame.Table, opts []widget.Option) (widget.Widget, func() error) {
	m := widget.NewMarket(t, opts...)
	return m, func() error {
		s := m.State()
		if cmd.Flags().Changed("state") {
			s.State, _ = cmd.Flags().GetString("state")
			if err := checkChoice("state", s.State, m.StateOptions()); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("min") {
			s.Min, _ = cmd.Flags().GetInt("min")
		}
		if cmd.Flags().Changed("max") {
			s.Max, _ = cmd.Flags().GetInt("max")
		}
		return m.Apply(s)
	}
}
