package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/model"
)

func newCompleteCmd(app *App) *cobra.Command {
	var incomplete bool

	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task as complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.FindTask(args[0])
			if err != nil {
				return err
			}

			completed := !incomplete
			if err := task.Update(model.TaskPatch{Completed: &completed}); err != nil {
				return err
			}
			if err := app.SaveAll(); err != nil {
				return err
			}

			word := "completed"
			if incomplete {
				word = "marked as incomplete"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' has been %s.\n", task.Title, word)

			now := time.Now()
			if task.ShouldGenerateNext(now) && !task.RecurrenceEnded(now) {
				if next := task.NextDueDate(nil, now); next != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Next occurrence would be due %s.\n", next.Format("2006-01-02"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&incomplete, "incomplete", false, "mark as incomplete instead of complete")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.FindTask(args[0])
			if err != nil {
				return err
			}
			title := task.Title

			kept := make([]model.Task, 0, len(app.Tasks))
			for _, t := range app.Tasks {
				if t.ID != args[0] {
					kept = append(kept, t)
				}
			}
			app.Tasks = kept
			if err := app.SaveAll(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' has been deleted.\n", title)
			return nil
		},
	}
}

func newUpdateCmd(app *App) *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.FindTask(args[0])
			if err != nil {
				return err
			}

			patch := model.TaskPatch{}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("due") {
				if due == "" {
					patch.ClearDueDate = true
				} else {
					parsed, err := model.ParseDate(due)
					if err != nil {
						return err
					}
					patch.DueDate = parsed
				}
			}
			if cmd.Flags().Changed("priority") {
				patch.Priority = &priority
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}

			if err := task.Update(patch); err != nil {
				return err
			}
			if err := app.SaveAll(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' has been updated.\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&due, "due", "D", "", "new due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "new tags (comma-separated, replaces existing)")
	return cmd
}
