package commands

import (
	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(app.Store, app.IDs)
		},
	}
}
