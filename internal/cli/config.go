package cli

import (
	"fmt"

	"github.com/imgajeed76/homeview/internal/config"
	"github.com/imgajeed76/homeview/internal/ui/styles"
	"github.com/imgajeed76/homeview/internal/util"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set homeview options",
		Long: `Get and set homeview configuration options.

Options:
` + config.GenerateHelpText() + `

Examples:
  homeview config display.head_rows        # Get value
  homeview config display.head_rows 10     # Set value
  homeview config plot.backend svg         # Draw trends as SVG files
  homeview config --list                   # List all config`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")
	cmd.Flags().Bool("path", false, "Print the config file path")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	listAll, _ := cmd.Flags().GetBool("list")
	showPath, _ := cmd.Flags().GetBool("path")

	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if showPath {
		fmt.Fprintln(out, path)
		return nil
	}

	if listAll {
		for _, key := range config.ListKeys() {
			value, _ := cfg.GetValue(key)
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		return nil
	}

	if len(args) == 0 {
		return util.MissingArgumentError("key", "homeview config display.head_rows")
	}

	key := args[0]

	// Get value
	if len(args) == 1 {
		value, ok := cfg.GetValue(key)
		if !ok {
			return util.UnknownConfigKeyError(key, config.ListKeys())
		}
		fmt.Fprintln(out, value)
		return nil
	}

	// Set value
	if err := cfg.SetValue(key, args[1]); err != nil {
		if _, ok := cfg.GetValue(key); !ok {
			return util.UnknownConfigKeyError(key, config.ListKeys())
		}
		return util.NewError(fmt.Sprintf("Invalid value for %s", key)).Wrap(err)
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("%s = %s", key, args[1])))
	return nil
}
