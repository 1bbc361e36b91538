package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/tasker/internal/model"
)

func formatTaskLine(task model.Task, now time.Time) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}

	due := ""
	switch {
	case task.IsOverdue(now):
		due = " !overdue"
	case task.IsDueToday(now):
		due = " today"
	case task.DueDate != nil:
		due = " " + task.DueDate.Format("2006-01-02")
	}

	return fmt.Sprintf("[%s] %s %s%s", mark, task.ID, task.Title, due)
}

func formatTaskDetail(task model.Task, now time.Time) string {
	due := "none"
	if task.DueDate != nil {
		due = task.DueDate.Format("2006-01-02 15:04")
		if task.IsOverdue(now) {
			due += " (OVERDUE)"
		} else if task.IsDueToday(now) {
			due += " (today)"
		}
	}

	tags := "none"
	if len(task.Tags) > 0 {
		tags = strings.Join(task.Tags, ", ")
	}

	status := "active"
	if task.Completed {
		status = "completed"
	}

	lines := []string{
		task.Title,
		fmt.Sprintf("Status: %s", status),
		fmt.Sprintf("Priority: %s", task.Priority),
		fmt.Sprintf("Due: %s", due),
		fmt.Sprintf("Tags: %s", tags),
	}

	if task.Description != "" {
		lines = append(lines, "", task.Description)
	}

	if len(task.Subtasks) > 0 {
		summary := task.SubtaskCompletion()
		lines = append(lines, "", fmt.Sprintf("Subtasks %d/%d (%d%%)", summary.Completed, summary.Total, summary.Percentage))
		for _, sub := range task.Subtasks {
			mark := " "
			if sub.Completed {
				mark = "x"
			}
			lines = append(lines, fmt.Sprintf("  [%s] %s", mark, sub.Title))
		}
	}

	if task.IsRecurring() {
		lines = append(lines, "", fmt.Sprintf("Repeats: %s every %d", task.Recurrence.Pattern, task.Recurrence.Interval))
	}

	return strings.Join(lines, "\n")
}
