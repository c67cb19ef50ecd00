package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/imgajeed76/homeview/internal/ui"
	"github.com/imgajeed76/homeview/internal/ui/styles"
	"github.com/imgajeed76/homeview/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// NewRootCmd builds the homeview command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "homeview",
		Short: "Explore Zillow-style home value tables from the terminal",
		Long: `homeview hosts four small widgets over a table of home values:

  explore   canned summaries (head, tail, shape, info, describe, columns)
  filter    filter rows by state and value range
  pivot     build a pivot table from categorical and numeric fields
  trends    plot home value trends for selected metros

Tables come from a CSV or Parquet file, a SQLite database or a
PostgreSQL query. On a terminal each widget opens interactively;
otherwise the view described by flags is rendered once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: platform config dir)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("homeview version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Set up pre-run to handle global flags
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			styles.SetNoColor(true)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		ui.SetVerbose(verbose)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newExploreCmd(),
		newFilterCmd(),
		newPivotCmd(),
		newTrendsCmd(),
		newShowCmd(),
		newCompletionCmd(rootCmd),
	)
	return rootCmd
}

func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		var hvErr *util.HomeviewError
		if errors.As(err, &hvErr) {
			fmt.Fprintln(os.Stderr, hvErr.Format())
		} else {
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func newCompletionCmd(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for homeview.

To load completions:

Bash:
  $ source <(homeview completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ homeview completion bash > /etc/bash_completion.d/homeview
  # macOS:
  $ homeview completion bash > $(brew --prefix)/etc/bash_completion.d/homeview

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ homeview completion zsh > "${fpath[1]}/_homeview"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ homeview completion fish | source

  # To load completions for each session, execute once:
  $ homeview completion fish > ~/.config/fish/completions/homeview.fish

PowerShell:
  PS> homeview completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> homeview completion powershell > homeview.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "homeview version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
