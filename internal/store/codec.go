package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Joseda-hg/tasker/internal/model"
)

// taskRecord is the on-disk shape of a task. Date fields stay raw JSON on
// the way in so older files with epoch numbers load the same as RFC3339
// strings; on the way out they are always RFC3339Nano strings, which
// round-trip to the nanosecond with their offset.
type taskRecord struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Completed   bool              `json:"completed"`
	CreatedAt   json.RawMessage   `json:"created_at,omitempty"`
	DueDate     json.RawMessage   `json:"due_date,omitempty"`
	Priority    string            `json:"priority"`
	Tags        []string          `json:"tags"`
	Subtasks    []subtaskRecord   `json:"subtasks"`
	Recurrence  *model.Recurrence `json:"recurrence,omitempty"`
	Reminders   []json.RawMessage `json:"reminders,omitempty"`
}

type subtaskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func encodeTask(task model.Task) taskRecord {
	rec := taskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    task.Priority,
		Tags:        task.Tags,
		Recurrence:  task.Recurrence,
		Reminders:   task.Reminders,
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	created := task.CreatedAt
	rec.CreatedAt = encodeDate(&created)
	rec.DueDate = encodeDate(task.DueDate)
	rec.Subtasks = make([]subtaskRecord, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		rec.Subtasks = append(rec.Subtasks, subtaskRecord(sub))
	}
	return rec
}

func decodeTask(rec taskRecord, ids *model.IDAllocator) (model.Task, error) {
	createdAt, err := model.ParseDateJSON(rec.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: created_at: %w", rec.ID, err)
	}
	dueDate, err := model.ParseDateJSON(rec.DueDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: due_date: %w", rec.ID, err)
	}

	input := model.TaskInput{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Completed:   rec.Completed,
		CreatedAt:   createdAt,
		DueDate:     dueDate,
		Priority:    rec.Priority,
		Tags:        rec.Tags,
		Recurrence:  rec.Recurrence,
		Reminders:   rec.Reminders,
	}
	for _, sub := range rec.Subtasks {
		input.Subtasks = append(input.Subtasks, model.SubtaskInput(sub))
	}
	return model.NewTask(input, ids), nil
}

func encodeDate(t *time.Time) json.RawMessage {
	if t == nil {
		return nil
	}
	data, _ := json.Marshal(t.Format(time.RFC3339Nano))
	return data
}
