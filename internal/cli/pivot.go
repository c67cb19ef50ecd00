package cli

import (
	"strings"

	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/widget"
	"github.com/spf13/cobra"
)

func newPivotCmd() *cobra.Command {
	cmd := newWidgetCmd("pivot", "Build a pivot table",
		`Aggregate a numeric field grouped by one or two categorical fields.

Examples:
  homeview pivot --csv home_values.csv
  homeview pivot --csv home_values.csv --index StateName --values HomeValue --agg median --no-tui
  homeview pivot --csv home_values.csv --index StateName --columns Tier --values HomeValue --agg count`,
		buildPivot)
	cmd.Flags().String("index", "", "Row grouping field")
	cmd.Flags().String("columns", "", "Column grouping field (none for no grouping)")
	cmd.Flags().String("values", "", "Numeric field to aggregate")
	cmd.Flags().String("agg", "", "Aggregation (mean, median, sum, count, min, max)")
	return cmd
}

func buildPivot(cmd *cobra.Command, t *frame.Table, opts []widget.Option) (widget.Widget, func() error) {
	p := widget.NewPivot(t, opts...)
	return p, func() error {
		var s widget.PivotState
		fields := []struct {
			flag string
			dst  *string
			d    *widget.Dropdown
		}{
			{"index", &s.Index, p.IndexControl()},
			{"columns", &s.Columns, p.ColumnsControl()},
			{"values", &s.Values, p.ValuesControl()},
		}
		for _, f := range fields {
			*f.dst, _ = cmd.Flags().GetString(f.flag)
			switch strings.ToLower(*f.dst) {
			case "":
				continue
			case "none":
				*f.dst = widget.None
			}
			if err := checkChoice(f.flag, *f.dst, f.d.Options()); err != nil {
				return err
			}
		}
		if agg, _ := cmd.Flags().GetString("agg"); agg != "" {
			if err := checkChoice("agg", agg, p.AggControl().Options()); err != nil {
				return err
			}
			s.Agg = frame.Aggregation(agg)
		}
		return p.Apply(s)
	}
}
