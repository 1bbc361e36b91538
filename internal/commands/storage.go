package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/model"
)

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear all tasks without --yes")
			}
			if err := app.Store.Clear(); err != nil {
				return err
			}
			app.Tasks = []model.Task{}
			fmt.Fprintln(cmd.OutOrStdout(), "All tasks cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing all tasks")
	return cmd
}

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Backend: %s\n", app.Config.Backend)
			fmt.Fprintf(w, "Tasks: %d\n", len(app.Tasks))
			if app.fileStore == nil {
				fmt.Fprintf(w, "Database: %s\n", app.Config.DBPath)
				return nil
			}

			info := app.fileStore.Info()
			fmt.Fprintf(w, "File: %s\n", app.Config.StoragePath)
			fmt.Fprintf(w, "Size: %d bytes (%.2f%% of soft limit)\n", info.Size, info.Percentage)
			if app.fileStore.NearCapacity(0.9) {
				fmt.Fprintln(w, "Warning: storage is near the soft limit.")
			}
			return nil
		},
	}
}
