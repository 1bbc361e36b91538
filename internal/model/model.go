package model

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	maxTitleLen        = 200
	maxSubtaskTitleLen = 100
	maxTags            = 10
	maxTagLen          = 50
	maxSubtasks        = 50
)

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Completed   bool              `json:"completed"`
	CreatedAt   time.Time         `json:"created_at"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Priority    string            `json:"priority"`
	Tags        []string          `json:"tags"`
	Subtasks    []Subtask         `json:"subtasks"`
	Recurrence  *Recurrence       `json:"recurrence,omitempty"`
	Reminders   []json.RawMessage `json:"reminders,omitempty"`
}

type SubtaskInput struct {
	ID        string
	Title     string
	Completed bool
}

type TaskInput struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   *time.Time
	DueDate     *time.Time
	Priority    string
	Tags        []string
	Subtasks    []SubtaskInput
	Recurrence  *Recurrence
	Reminders   []json.RawMessage
}

func NewSubtask(input SubtaskInput) Subtask {
	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}
	return Subtask{ID: id, Title: input.Title, Completed: input.Completed}
}

// NewTask builds a task from explicit input, filling documented defaults.
// It does not validate; callers constructing from user-supplied data are
// expected to call Validate afterwards.
func NewTask(input TaskInput, ids *IDAllocator) Task {
	task := Task{
		ID:          ids.Claim(input.ID),
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Priority:    input.Priority,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if input.CreatedAt != nil {
		task.CreatedAt = *input.CreatedAt
	} else {
		task.CreatedAt = time.Now()
	}
	if input.DueDate != nil {
		due := *input.DueDate
		task.DueDate = &due
	}
	if input.Recurrence != nil {
		rec := *input.Recurrence
		if input.Recurrence.End != nil {
			end := *input.Recurrence.End
			rec.End = &end
		}
		task.Recurrence = &rec
	}
	task.Tags = append([]string{}, input.Tags...)
	task.Subtasks = make([]Subtask, 0, len(input.Subtasks))
	for _, sub := range input.Subtasks {
		task.Subtasks = append(task.Subtasks, NewSubtask(sub))
	}
	task.Reminders = append([]json.RawMessage{}, input.Reminders...)
	return task
}

// Clone deep-copies the task so mutations of the copy never alias the
// original's slices or pointers.
func (t Task) Clone() Task {
	clone := t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	clone.Tags = append([]string{}, t.Tags...)
	clone.Subtasks = append([]Subtask{}, t.Subtasks...)
	clone.Reminders = append([]json.RawMessage{}, t.Reminders...)
	if t.Recurrence != nil {
		rec := *t.Recurrence
		if t.Recurrence.End != nil {
			end := *t.Recurrence.End
			rec.End = &end
		}
		clone.Recurrence = &rec
	}
	return clone
}

type TaskPatch struct {
	Title        *string
	Description  *string
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *string
	Tags         *[]string
	Subtasks     *[]SubtaskInput
}

// Update applies the present patch fields to a copy, re-validates, and only
// then replaces the receiver, so a failed update leaves the task untouched.
// Tags and subtasks replace wholesale when present, they are never merged.
func (t *Task) Update(patch TaskPatch) error {
	next := t.Clone()
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Completed != nil {
		next.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		next.DueDate = &due
	} else if patch.ClearDueDate {
		next.DueDate = nil
	}
	if patch.Priority != nil {
		next.Priority = *patch.Priority
	}
	if patch.Tags != nil {
		next.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.Subtasks != nil {
		next.Subtasks = make([]Subtask, 0, len(*patch.Subtasks))
		for _, sub := range *patch.Subtasks {
			next.Subtasks = append(next.Subtasks, NewSubtask(sub))
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

type SubtaskPatch struct {
	Title     *string
	Completed *bool
}

func (s *Subtask) Update(patch SubtaskPatch) error {
	next := *s
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Completed != nil {
		next.Completed = *patch.Completed
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// calendarDate strips the time of day so overdue/today/future checks compare
// calendar dates, not instants.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return calendarDate(*t.DueDate).Before(calendarDate(now))
}

// IsDueToday reports a due date on today's calendar date, regardless of
// completion.
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return calendarDate(*t.DueDate).Equal(calendarDate(now))
}

func (t *Task) IsDueFuture(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return calendarDate(*t.DueDate).After(calendarDate(now))
}

type CompletionSummary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func (t *Task) SubtaskCompletion() CompletionSummary {
	total := len(t.Subtasks)
	if total == 0 {
		return CompletionSummary{}
	}
	completed := 0
	for _, sub := range t.Subtasks {
		if sub.Completed {
			completed++
		}
	}
	percentage := int(math.Round(float64(completed) / float64(total) * 100))
	return CompletionSummary{Completed: completed, Total: total, Percentage: percentage}
}

func (t *Task) AddSubtask(input SubtaskInput) Subtask {
	sub := NewSubtask(input)
	t.Subtasks = append(t.Subtasks, sub)
	return sub
}

func (t *Task) Subtask(id string) (*Subtask, bool) {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return &t.Subtasks[i], true
		}
	}
	return nil, false
}

// FindTask looks a task up by id. Absence is an expected outcome of
// user-supplied ids, so it is reported as a bool rather than an error.
func FindTask(tasks []Task, id string) (*Task, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], true
		}
	}
	return nil, false
}
