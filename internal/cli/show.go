package cli

import (
	"github.com/imgajeed76/homeview/internal/ui/table"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Browse a source table",
		Long: `Browse every row of a source table.

On a terminal the table opens in a scrolling browser (/ to search, enter
to expand a column, y to copy a cell). Otherwise it is printed as an
aligned table.

Examples:
  homeview show --csv home_values.csv
  homeview show --sqlite zillow.db --query 'SELECT * FROM metro_zhvi' --json
  homeview show --csv home_values.csv --raw | cut -f2`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	addSourceFlags(cmd)
	cmd.Flags().Bool("json", false, "Output rows as JSON")
	cmd.Flags().Bool("raw", false, "Output tab-separated values without a header")
	cmd.Flags().Bool("no-pager", false, "Print the table instead of opening the browser")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	t, name, err := loadTable(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}

	var opts table.DisplayOptions
	opts.JSON, _ = cmd.Flags().GetBool("json")
	opts.Raw, _ = cmd.Flags().GetBool("raw")
	opts.NoPager, _ = cmd.Flags().GetBool("no-pager")
	return table.Display(cmd.OutOrStdout(), name, t, opts)
}
