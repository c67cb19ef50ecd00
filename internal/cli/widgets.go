package cli

import (
	"github.com/imgajeed76/homeview/internal/frame"
	"github.com/imgajeed76/homeview/internal/widget"
	"github.com/spf13/cobra"
)

// builder constructs a widget over t and returns the function that applies
// the command's state flags to it.
type builder func(cmd *cobra.Command, t *frame.Table, opts []widget.Option) (widget.Widget, func() error)

// runWidget loads the table, builds the widget and presents it.
func runWidget(cmd *cobra.Command, build builder) error {
	ctx := cmd.Context()

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := widgetOptions(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	t, name, err := loadTable(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	w, apply := build(cmd, t, opts)
	return present(cmd, name, w, apply)
}

func newWidgetCmd(use, short, long string, build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, build)
		},
	}
	addSourceFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}
