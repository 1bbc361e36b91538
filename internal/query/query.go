// Package query filters, searches, and sorts in-memory task collections.
// Every function takes the collection by value and returns a fresh slice;
// nothing here mutates or performs I/O.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/Joseda-hg/tasker/internal/model"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// All disables a status, priority, or due-range criterion.
const All = "all"

const (
	DueToday    = "today"
	DueUpcoming = "upcoming"
	DueOverdue  = "overdue"
	DueNoDate   = "no-date"
)

const (
	SortDueDate   = "dueDate"
	SortPriority  = "priority"
	SortCreatedAt = "createdAt"
	SortTitle     = "title"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Criteria is a sparse filter; zero values mean "no constraint".
type Criteria struct {
	Status   string
	Priority string
	Tags     []string
	DueRange string
}

// Search keeps tasks whose title or description contains the query,
// case-insensitively. An empty query returns the input unchanged rather
// than an empty result.
func Search(tasks []model.Task, q string) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Description), needle) {
			out = append(out, task)
		}
	}
	return out
}

// Filter applies each present criterion in sequence, narrowing the working
// set. Unknown status or priority values act as "no filter".
func Filter(tasks []model.Task, c Criteria, now time.Time) []model.Task {
	out := append([]model.Task{}, tasks...)

	switch c.Status {
	case StatusActive:
		out = keep(out, func(t model.Task) bool { return !t.Completed })
	case StatusCompleted:
		out = keep(out, func(t model.Task) bool { return t.Completed })
	}

	if c.Priority != "" && c.Priority != All {
		out = keep(out, func(t model.Task) bool { return t.Priority == c.Priority })
	}

	if len(c.Tags) > 0 {
		out = keep(out, func(t model.Task) bool { return hasAnyTag(t, c.Tags) })
	}

	if c.DueRange != "" {
		out = keep(out, func(t model.Task) bool { return matchesDueRange(t, c.DueRange, now) })
	}

	return out
}

// SearchAndFilter searches first, then filters the already-narrowed set.
func SearchAndFilter(tasks []model.Task, q string, c Criteria, now time.Time) []model.Task {
	return Filter(Search(tasks, q), c, now)
}

// Sort returns a stably sorted copy. Under the dueDate key, overdue tasks
// lead regardless of direction; within each group missing due dates sort as
// the maximum possible date. Unrecognized keys fall back to dueDate.
func Sort(tasks []model.Task, key, order string, now time.Time) []model.Task {
	out := append([]model.Task{}, tasks...)
	desc := order == OrderDesc

	var less func(a, b model.Task) bool
	switch key {
	case SortPriority:
		less = func(a, b model.Task) bool {
			if desc {
				return priorityRank(a.Priority) > priorityRank(b.Priority)
			}
			return priorityRank(a.Priority) < priorityRank(b.Priority)
		}
	case SortCreatedAt:
		less = func(a, b model.Task) bool {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortTitle:
		less = func(a, b model.Task) bool {
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if desc {
				return at > bt
			}
			return at < bt
		}
	default:
		less = func(a, b model.Task) bool {
			ao, bo := a.IsOverdue(now), b.IsOverdue(now)
			if ao != bo {
				return ao
			}
			ad, bd := dueOrMax(a), dueOrMax(b)
			if desc {
				return ad.After(bd)
			}
			return ad.Before(bd)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// UniqueTags returns every tag used across the collection, deduplicated and
// sorted.
func UniqueTags(tasks []model.Task) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, task := range tasks {
		for _, tag := range task.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

type Stats struct {
	Total             int
	Active            int
	Completed         int
	Overdue           int
	DueToday          int
	Upcoming          int
	ByPriority        map[string]int
	CompletionPercent float64
}

func Summarize(tasks []model.Task, now time.Time) Stats {
	stats := Stats{
		Total: len(tasks),
		ByPriority: map[string]int{
			model.PriorityHigh:   0,
			model.PriorityMedium: 0,
			model.PriorityLow:    0,
		},
	}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
		if task.IsOverdue(now) {
			stats.Overdue++
		}
		if task.IsDueToday(now) {
			stats.DueToday++
		}
		if task.IsDueFuture(now) {
			stats.Upcoming++
		}
		if _, ok := stats.ByPriority[task.Priority]; ok {
			stats.ByPriority[task.Priority]++
		}
	}
	if stats.Total > 0 {
		stats.CompletionPercent = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

func keep(tasks []model.Task, pred func(model.Task) bool) []model.Task {
	out := tasks[:0]
	for _, task := range tasks {
		if pred(task) {
			out = append(out, task)
		}
	}
	return out
}

func hasAnyTag(task model.Task, tags []string) bool {
	for _, want := range tags {
		for _, have := range task.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// matchesDueRange buckets a task by temporal relevance. "all" and unknown
// ranges keep everything, dateless tasks included. A task without a due date
// matches only no-date among the concrete ranges; the due predicates already
// report false without a date.
func matchesDueRange(task model.Task, dueRange string, now time.Time) bool {
	switch dueRange {
	case DueToday:
		return task.IsDueToday(now)
	case DueUpcoming:
		return task.IsDueFuture(now)
	case DueOverdue:
		return task.IsOverdue(now)
	case DueNoDate:
		return task.DueDate == nil
	default:
		return true
	}
}

var maxDue = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

func dueOrMax(task model.Task) time.Time {
	if task.DueDate == nil {
		return maxDue
	}
	return *task.DueDate
}

func priorityRank(priority string) int {
	switch priority {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 1
	default:
		return 0
	}
}
