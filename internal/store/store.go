package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Joseda-hg/tasker/internal/model"
)

// Store is the load/save contract front-ends talk to. Save overwrites the
// whole collection. Load resets the id allocator from what it read and
// degrades to an empty collection on failure, returning the error so the
// caller can report it instead of dying on a broken file.
type Store interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
	Clear() error
}

// Soft limit the capacity report measures against. Advisory only, nothing
// blocks a write past it.
const capacityLimitBytes = 10 << 20

// FileStore keeps the collection as a pretty-printed JSON array in a single
// file.
type FileStore struct {
	path string
	ids  *model.IDAllocator
}

func NewFileStore(path string, ids *model.IDAllocator) *FileStore {
	return &FileStore{path: path, ids: ids}
}

func (s *FileStore) Load() ([]model.Task, error) {
	s.ids.Reset(nil)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return []model.Task{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return []model.Task{}, fmt.Errorf("parse %s: %w", s.path, err)
	}

	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		task, err := decodeTask(rec, s.ids)
		if err != nil {
			return []model.Task{}, err
		}
		tasks = append(tasks, task)
	}

	s.ids.Reset(tasks)
	return tasks, nil
}

// Save writes through a temp file and rename, so a failed write leaves the
// previous file intact.
func (s *FileStore) Save(tasks []model.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, encodeTask(task))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasks-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

type StorageInfo struct {
	Size       int64
	Percentage float64
}

// Info reports the file size against the soft limit.
func (s *FileStore) Info() StorageInfo {
	stat, err := os.Stat(s.path)
	if err != nil {
		return StorageInfo{}
	}
	return StorageInfo{
		Size:       stat.Size(),
		Percentage: float64(stat.Size()) / float64(capacityLimitBytes) * 100,
	}
}

func (s *FileStore) NearCapacity(threshold float64) bool {
	return s.Info().Percentage > threshold*100
}
