package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Joseda-hg/tasker/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore keeps the collection in a single sqlite table, one row per
// task with the nested fields stored as JSON columns. It implements the same
// whole-collection Load/Save contract as FileStore.
type SQLiteStore struct {
	db  *sql.DB
	ids *model.IDAllocator
}

func OpenSQLite(path string, ids *model.IDAllocator) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), string(schemaSQL)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, ids: ids}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() ([]model.Task, error) {
	s.ids.Reset(nil)

	rows, err := s.db.Query(`SELECT id, title, description, completed, priority, created_at, due_date, tags, subtasks, recurrence, reminders FROM tasks ORDER BY rowid`)
	if err != nil {
		return []model.Task{}, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var (
			input          model.TaskInput
			completed      int64
			createdAt      string
			dueDate        sql.NullString
			tagsJSON       string
			subtasksJSON   string
			recurrenceJSON sql.NullString
			remindersJSON  sql.NullString
		)
		if err := rows.Scan(&input.ID, &input.Title, &input.Description, &completed, &input.Priority,
			&createdAt, &dueDate, &tagsJSON, &subtasksJSON, &recurrenceJSON, &remindersJSON); err != nil {
			return []model.Task{}, err
		}
		input.Completed = completed != 0

		created, err := model.ParseDate(createdAt)
		if err != nil {
			return []model.Task{}, fmt.Errorf("task %s: created_at: %w", input.ID, err)
		}
		input.CreatedAt = created

		if dueDate.Valid {
			due, err := model.ParseDate(dueDate.String)
			if err != nil {
				return []model.Task{}, fmt.Errorf("task %s: due_date: %w", input.ID, err)
			}
			input.DueDate = due
		}

		if err := json.Unmarshal([]byte(tagsJSON), &input.Tags); err != nil {
			return []model.Task{}, fmt.Errorf("task %s: tags: %w", input.ID, err)
		}
		if err := json.Unmarshal([]byte(subtasksJSON), &input.Subtasks); err != nil {
			return []model.Task{}, fmt.Errorf("task %s: subtasks: %w", input.ID, err)
		}
		if recurrenceJSON.Valid && recurrenceJSON.String != "" {
			if err := json.Unmarshal([]byte(recurrenceJSON.String), &input.Recurrence); err != nil {
				return []model.Task{}, fmt.Errorf("task %s: recurrence: %w", input.ID, err)
			}
		}
		if remindersJSON.Valid && remindersJSON.String != "" {
			if err := json.Unmarshal([]byte(remindersJSON.String), &input.Reminders); err != nil {
				return []model.Task{}, fmt.Errorf("task %s: reminders: %w", input.ID, err)
			}
		}

		tasks = append(tasks, model.NewTask(input, s.ids))
	}
	if err := rows.Err(); err != nil {
		return []model.Task{}, err
	}

	s.ids.Reset(tasks)
	return tasks, nil
}

// Save replaces the whole collection in one transaction, matching the
// all-or-nothing overwrite semantics of the file backend.
func (s *SQLiteStore) Save(tasks []model.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (id, title, description, completed, priority, created_at, due_date, tags, subtasks, recurrence, reminders) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, task := range tasks {
		tags := task.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return err
		}

		subtasks := task.Subtasks
		if subtasks == nil {
			subtasks = []model.Subtask{}
		}
		subtasksJSON, err := json.Marshal(subtasks)
		if err != nil {
			return err
		}

		var recurrenceJSON any
		if task.Recurrence != nil {
			data, err := json.Marshal(task.Recurrence)
			if err != nil {
				return err
			}
			recurrenceJSON = string(data)
		}

		var remindersJSON any
		if len(task.Reminders) > 0 {
			data, err := json.Marshal(task.Reminders)
			if err != nil {
				return err
			}
			remindersJSON = string(data)
		}

		completed := 0
		if task.Completed {
			completed = 1
		}

		var dueDate any
		if task.DueDate != nil {
			dueDate = task.DueDate.Format(time.RFC3339Nano)
		}

		if _, err := stmt.Exec(task.ID, task.Title, task.Description, completed, task.Priority,
			task.CreatedAt.Format(time.RFC3339Nano), dueDate,
			string(tagsJSON), string(subtasksJSON), recurrenceJSON, remindersJSON); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM tasks`)
	return err
}
