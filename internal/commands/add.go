package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/model"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		description string
		due         string
		priority    string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := model.TaskInput{
				Title:       args[0],
				Description: description,
				Priority:    priority,
				Tags:        tags,
			}
			if due != "" {
				parsed, err := model.ParseDate(due)
				if err != nil {
					return err
				}
				input.DueDate = parsed
			}

			task := model.NewTask(input, app.IDs)
			if err := task.Validate(); err != nil {
				return err
			}

			app.Tasks = append(app.Tasks, task)
			if err := app.SaveAll(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task added successfully with ID: %s\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&due, "due", "D", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", model.PriorityMedium, "priority (low, medium, high)")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "comma-separated tags")
	return cmd
}
