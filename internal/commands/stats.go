package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/model"
	"github.com/Joseda-hg/tasker/internal/query"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := query.Summarize(app.Tasks, time.Now())
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "\nTask Statistics:")
			fmt.Fprintf(w, "Total tasks: %d\n", stats.Total)
			fmt.Fprintf(w, "Active tasks: %d\n", stats.Active)
			fmt.Fprintf(w, "Completed tasks: %d\n", stats.Completed)
			fmt.Fprintf(w, "Overdue tasks: %d\n", stats.Overdue)
			fmt.Fprintf(w, "Tasks due today: %d\n", stats.DueToday)
			fmt.Fprintf(w, "Upcoming tasks: %d\n", stats.Upcoming)
			fmt.Fprintln(w, "\nPriority Breakdown:")
			for _, priority := range []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
				fmt.Fprintf(w, "  %s: %d\n", priority, stats.ByPriority[priority])
			}
			if stats.Total > 0 {
				fmt.Fprintf(w, "\nOverall completion: %.1f%%\n", stats.CompletionPercent)
			}
			return nil
		},
	}
}

func newTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := query.UniqueTags(app.Tasks)
			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags in use.")
				return nil
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
