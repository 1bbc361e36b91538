package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError names the first field that violated an invariant and the
// rule it broke. It is always recoverable: the caller rejects the mutation
// and keeps prior state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (s *Subtask) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return &ValidationError{Field: "title", Message: "subtask title must be a non-empty string"}
	}
	if utf8.RuneCountInString(s.Title) > maxSubtaskTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("subtask title must be %d characters or less", maxSubtaskTitleLen)}
	}
	return nil
}

// Validate applies every field invariant in order and reports the first
// violation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Message: "title must be a non-empty string"}
	}
	if utf8.RuneCountInString(t.Title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title must be %d characters or less", maxTitleLen)}
	}
	switch t.Priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return &ValidationError{Field: "priority", Message: "priority must be one of: high, medium, low"}
	}
	if len(t.Tags) > maxTags {
		return &ValidationError{Field: "tags", Message: fmt.Sprintf("maximum %d tags per task", maxTags)}
	}
	for _, tag := range t.Tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return &ValidationError{Field: "tags", Message: fmt.Sprintf("each tag must be %d characters or less", maxTagLen)}
		}
	}
	if len(t.Subtasks) > maxSubtasks {
		return &ValidationError{Field: "subtasks", Message: fmt.Sprintf("maximum %d subtasks per task", maxSubtasks)}
	}
	if t.CreatedAt.IsZero() {
		return &ValidationError{Field: "created_at", Message: "created at must be a valid time"}
	}
	return nil
}
