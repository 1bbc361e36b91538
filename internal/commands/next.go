package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// next previews what the recurrence calculator would schedule. It never
// creates the instance; recurring tasks are rolled forward by the user, not
// by a scheduler.
func newNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next <task-id>",
		Short: "Show when a recurring task's next occurrence would be due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.FindTask(args[0])
			if err != nil {
				return err
			}
			if !task.IsRecurring() {
				return fmt.Errorf("task %s has no recurrence rule", task.ID)
			}

			now := time.Now()
			w := cmd.OutOrStdout()
			if task.RecurrenceEnded(now) {
				fmt.Fprintf(w, "Recurrence for '%s' has ended.\n", task.Title)
				return nil
			}

			next := task.NextDueDate(nil, now)
			if next == nil {
				fmt.Fprintf(w, "Unknown recurrence pattern %q; no next occurrence.\n", task.Recurrence.Pattern)
				return nil
			}

			fmt.Fprintf(w, "Next occurrence of '%s' would be due %s.\n", task.Title, next.Format("2006-01-02 15:04"))
			if task.ShouldGenerateNext(now) {
				fmt.Fprintln(w, "The current instance is completed or past due; a new one is ready to be created.")
			}
			return nil
		},
	}
}
