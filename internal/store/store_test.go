package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Joseda-hg/tasker/internal/model"
)

func newTestFileStore(t *testing.T) (*FileStore, *model.IDAllocator) {
	t.Helper()
	ids := model.NewIDAllocator()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewFileStore(path, ids), ids
}

func TestFileStoreRoundTrip(t *testing.T) {
	fileStore, ids := newTestFileStore(t)

	due := time.Date(2026, 3, 10, 9, 30, 0, 123456789, time.UTC)
	task := model.NewTask(model.TaskInput{
		Title:       "Persist me",
		Description: "with everything",
		DueDate:     &due,
		Priority:    model.PriorityHigh,
		Tags:        []string{"home"},
		Subtasks:    []model.SubtaskInput{{Title: "step one", Completed: true}},
		Recurrence: &model.Recurrence{
			Pattern:  model.PatternWeekly,
			Interval: 2,
			End:      &model.EndCondition{Type: model.EndOnDate, Value: "2027-01-01"},
		},
	}, ids)

	if err := fileStore.Save([]model.Task{task}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := fileStore.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 task, got %d", len(loaded))
	}

	got := loaded[0]
	if got.ID != task.ID || got.Title != task.Title || got.Description != task.Description {
		t.Fatalf("core fields changed: %+v", got)
	}
	if got.Priority != model.PriorityHigh {
		t.Fatalf("expected priority high, got %q", got.Priority)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("expected due date %v, got %v", due, got.DueDate)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("expected created at %v, got %v", task.CreatedAt, got.CreatedAt)
	}
	if len(got.Subtasks) != 1 || got.Subtasks[0].ID != task.Subtasks[0].ID || !got.Subtasks[0].Completed {
		t.Fatalf("subtasks changed: %+v", got.Subtasks)
	}
	if got.Recurrence == nil || got.Recurrence.Pattern != model.PatternWeekly || got.Recurrence.Interval != 2 {
		t.Fatalf("recurrence changed: %+v", got.Recurrence)
	}
	if got.Recurrence.End == nil || got.Recurrence.End.Value != "2027-01-01" {
		t.Fatalf("end condition changed: %+v", got.Recurrence.End)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	fileStore, _ := newTestFileStore(t)

	tasks, err := fileStore.Load()
	if err != nil {
		t.Fatalf("expected missing file to load empty, got %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	fileStore, ids := newTestFileStore(t)
	if err := os.WriteFile(fileStore.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tasks, err := fileStore.Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection on failure, got %d", len(tasks))
	}
	if got := ids.Next(); got != "1" {
		t.Fatalf("expected allocator reset to 1, got %q", got)
	}
}

func TestFileStoreLoadResetsAllocator(t *testing.T) {
	fileStore, ids := newTestFileStore(t)

	tasks := []model.Task{
		model.NewTask(model.TaskInput{ID: "4", Title: "four"}, ids),
		model.NewTask(model.TaskInput{ID: "9", Title: "nine"}, ids),
	}
	if err := fileStore.Save(tasks); err != nil {
		t.Fatalf("save: %v", err)
	}

	freshIDs := model.NewIDAllocator()
	fresh := NewFileStore(fileStore.path, freshIDs)
	if _, err := fresh.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := freshIDs.Next(); got != "10" {
		t.Fatalf("expected next id '10', got %q", got)
	}
}

func TestFileStoreLoadLegacyDates(t *testing.T) {
	fileStore, _ := newTestFileStore(t)

	// Epoch numbers and offset-less ISO strings both still load.
	legacy := `[
  {
    "id": "1",
    "title": "Legacy",
    "completed": false,
    "created_at": 1767225600,
    "due_date": "2026-03-10T09:30:00",
    "priority": "low",
    "tags": [],
    "subtasks": []
  }
]`
	if err := os.WriteFile(fileStore.path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tasks, err := fileStore.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].CreatedAt.Unix() != 1767225600 {
		t.Fatalf("expected epoch created at, got %v", tasks[0].CreatedAt)
	}
	if tasks[0].DueDate == nil || tasks[0].DueDate.Day() != 10 {
		t.Fatalf("expected parsed due date, got %v", tasks[0].DueDate)
	}
}

func TestFileStoreClear(t *testing.T) {
	fileStore, ids := newTestFileStore(t)

	task := model.NewTask(model.TaskInput{Title: "Doomed"}, ids)
	if err := fileStore.Save([]model.Task{task}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := fileStore.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(fileStore.path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}

	// Clearing again is not an error.
	if err := fileStore.Clear(); err != nil {
		t.Fatalf("clear empty: %v", err)
	}
}

func TestFileStoreInfo(t *testing.T) {
	fileStore, ids := newTestFileStore(t)

	if info := fileStore.Info(); info.Size != 0 {
		t.Fatalf("expected zero info for missing file, got %+v", info)
	}

	task := model.NewTask(model.TaskInput{Title: "Sized"}, ids)
	if err := fileStore.Save([]model.Task{task}); err != nil {
		t.Fatalf("save: %v", err)
	}

	info := fileStore.Info()
	if info.Size == 0 {
		t.Fatalf("expected non-zero size")
	}
	if info.Percentage <= 0 || info.Percentage >= 100 {
		t.Fatalf("unexpected percentage %v", info.Percentage)
	}
	if fileStore.NearCapacity(0.9) {
		t.Fatalf("tiny file must not be near capacity")
	}
}
