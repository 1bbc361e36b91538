package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/model"
)

func newSubtaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks",
	}
	cmd.AddCommand(newSubtaskAddCmd(app), newSubtaskCompleteCmd(app))
	return cmd
}

func newSubtaskAddCmd(app *App) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "add <task-id> <title>",
		Short: "Add a subtask to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.FindTask(args[0])
			if err != nil {
				return err
			}

			sub := model.NewSubtask(model.SubtaskInput{Title: args[1], Completed: completed})
			if err := sub.Validate(); err != nil {
				return err
			}

			task.Subtasks = append(task.Subtasks, sub)
			if err := task.Validate(); err != nil {
				task.Subtasks = task.Subtasks[:len(task.Subtasks)-1]
				return err
			}
			if err := app.SaveAll(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Subtask '%s' added to task '%s'.\n", sub.Title, task.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "mark as completed initially")
	return cmd
}

func newSubtaskCompleteCmd(app *App) *cobra.Command {
	var incomplete bool

	cmd := &cobra.Command{
		Use:   "complete <task-id> <subtask-id>",
		Short: "Mark a subtask as complete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.FindTask(args[0])
			if err != nil {
				return err
			}

			sub, ok := task.Subtask(args[1])
			if !ok {
				return fmt.Errorf("subtask %s not found in task %s", args[1], args[0])
			}

			completed := !incomplete
			if err := sub.Update(model.SubtaskPatch{Completed: &completed}); err != nil {
				return err
			}
			if err := app.SaveAll(); err != nil {
				return err
			}

			word := "completed"
			if incomplete {
				word = "marked as incomplete"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subtask '%s' in task '%s' has been %s.\n", sub.Title, task.Title, word)
			return nil
		},
	}

	cmd.Flags().BoolVar(&incomplete, "incomplete", false, "mark as incomplete instead of complete")
	return cmd
}
