// Package commands implements the tasker CLI command tree.
package commands

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(app *App) *cobra.Command {
	var (
		configPath  string
		storagePath string
		dbPath      string
		backend     string
	)

	rootCmd := &cobra.Command{
		Use:           "tasker",
		Short:         "Track tasks, subtasks, and recurring work from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Setup(configPath, storagePath, dbPath, backend)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&storagePath, "file", "", "tasks json file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite db path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend (json or sqlite)")

	rootCmd.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newCompleteCmd(app),
		newDeleteCmd(app),
		newUpdateCmd(app),
		newSearchCmd(app),
		newSubtaskCmd(app),
		newTagsCmd(app),
		newStatsCmd(app),
		newNextCmd(app),
		newClearCmd(app),
		newInfoCmd(app),
		newTUICmd(app),
	)

	return rootCmd
}
