package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Joseda-hg/tasker/internal/model"
)

func printTaskList(w io.Writer, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	fmt.Fprintf(w, "\nFound %d task(s):\n\n", len(tasks))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for i, task := range tasks {
		printTask(w, task, now)
		if i < len(tasks)-1 {
			fmt.Fprintln(w, strings.Repeat("-", 80))
		}
	}
}

func printTask(w io.Writer, task model.Task, now time.Time) {
	fmt.Fprintf(w, "%s [%s] (%s) %s\n", checkbox(task.Completed), task.ID, priorityChar(task.Priority), task.Title)
	if task.Description != "" {
		fmt.Fprintf(w, "   Desc: %s\n", task.Description)
	}

	line := fmt.Sprintf("   Status=%s | Priority=%s", statusWord(task.Completed), task.Priority)
	if task.DueDate != nil {
		line += " | Due: " + task.DueDate.Format("2006-01-02")
		if task.IsOverdue(now) {
			line += " (OVERDUE!)"
		} else if task.IsDueToday(now) {
			line += " (TODAY)"
		}
	}
	if len(task.Tags) > 0 {
		line += " | Tags: " + strings.Join(task.Tags, ", ")
	}
	if len(task.Subtasks) > 0 {
		completion := task.SubtaskCompletion()
		line += fmt.Sprintf(" | Subtasks: %d/%d (%d%%)", completion.Completed, completion.Total, completion.Percentage)
	}
	fmt.Fprintln(w, line)

	for _, sub := range task.Subtasks {
		fmt.Fprintf(w, "     %s %s (%s)\n", checkbox(sub.Completed), sub.Title, sub.ID)
	}
	fmt.Fprintln(w)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func priorityChar(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "H"
	case model.PriorityLow:
		return "L"
	default:
		return "M"
	}
}

func statusWord(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Active"
}
