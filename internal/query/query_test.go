package query

import (
	"testing"
	"time"

	"github.com/Joseda-hg/tasker/internal/model"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func buildTask(t *testing.T, ids *model.IDAllocator, input model.TaskInput) model.Task {
	t.Helper()
	task := model.NewTask(input, ids)
	if err := task.Validate(); err != nil {
		t.Fatalf("fixture task %q invalid: %v", input.Title, err)
	}
	return task
}

func fixtureTasks(t *testing.T) []model.Task {
	t.Helper()
	ids := model.NewIDAllocator()
	yesterday := testNow.AddDate(0, 0, -1)
	today := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	tomorrow := testNow.AddDate(0, 0, 1)

	return []model.Task{
		buildTask(t, ids, model.TaskInput{
			Title:    "Pay rent",
			Priority: model.PriorityHigh,
			DueDate:  &yesterday,
			Tags:     []string{"home", "money"},
		}),
		buildTask(t, ids, model.TaskInput{
			Title:       "Write report",
			Description: "quarterly numbers",
			Priority:    model.PriorityMedium,
			DueDate:     &tomorrow,
			Tags:        []string{"work"},
		}),
		buildTask(t, ids, model.TaskInput{
			Title:     "Call dentist",
			Priority:  model.PriorityLow,
			DueDate:   &today,
			Completed: true,
			Tags:      []string{"health"},
		}),
		buildTask(t, ids, model.TaskInput{
			Title:    "Read book",
			Priority: model.PriorityLow,
		}),
	}
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestSearchEmptyQueryIsIdentity(t *testing.T) {
	tasks := fixtureTasks(t)
	got := Search(tasks, "   ")
	if len(got) != len(tasks) {
		t.Fatalf("expected all %d tasks, got %d", len(tasks), len(got))
	}
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	tasks := fixtureTasks(t)

	got := Search(tasks, "REPORT")
	if len(got) != 1 || got[0].Title != "Write report" {
		t.Fatalf("expected title match, got %v", titles(got))
	}

	got = Search(tasks, "quarterly")
	if len(got) != 1 || got[0].Title != "Write report" {
		t.Fatalf("expected description match, got %v", titles(got))
	}

	got = Search(tasks, "nothing here")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", titles(got))
	}
}

func TestFilterStatusAndPriority(t *testing.T) {
	tasks := fixtureTasks(t)
	ids := model.NewIDAllocator()
	ids.Reset(tasks)
	tasks = append(tasks, buildTask(t, ids, model.TaskInput{
		Title:     "Shipped already",
		Priority:  model.PriorityHigh,
		Completed: true,
	}))

	got := Filter(tasks, Criteria{Status: StatusActive}, testNow)
	if len(got) != 3 {
		t.Fatalf("expected 3 active tasks, got %v", titles(got))
	}

	got = Filter(tasks, Criteria{Status: StatusCompleted}, testNow)
	if len(got) != 2 {
		t.Fatalf("expected completed tasks only, got %v", titles(got))
	}

	got = Filter(tasks, Criteria{Status: StatusActive, Priority: model.PriorityHigh}, testNow)
	if len(got) != 1 || got[0].Title != "Pay rent" {
		t.Fatalf("expected active high task, got %v", titles(got))
	}

	got = Filter(tasks, Criteria{Priority: All}, testNow)
	if len(got) != len(tasks) {
		t.Fatalf("expected 'all' to apply no narrowing, got %v", titles(got))
	}
}

func TestFilterTagsMatchAny(t *testing.T) {
	tasks := fixtureTasks(t)

	got := Filter(tasks, Criteria{Tags: []string{"money", "health"}}, testNow)
	if len(got) != 2 {
		t.Fatalf("expected 2 tagged tasks, got %v", titles(got))
	}

	got = Filter(tasks, Criteria{Tags: []string{"absent"}}, testNow)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", titles(got))
	}
}

func TestFilterDueRanges(t *testing.T) {
	tasks := fixtureTasks(t)

	// "all" and unrecognized ranges keep the full set, the dateless task
	// included.
	cases := []struct {
		dueRange string
		want     []string
	}{
		{DueOverdue, []string{"Pay rent"}},
		{DueToday, []string{"Call dentist"}},
		{DueUpcoming, []string{"Write report"}},
		{DueNoDate, []string{"Read book"}},
		{All, []string{"Pay rent", "Write report", "Call dentist", "Read book"}},
		{"someday", []string{"Pay rent", "Write report", "Call dentist", "Read book"}},
	}

	for _, tc := range cases {
		t.Run(tc.dueRange, func(t *testing.T) {
			got := Filter(tasks, Criteria{DueRange: tc.dueRange}, testNow)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, titles(got))
			}
			for i, title := range tc.want {
				if got[i].Title != title {
					t.Fatalf("expected %v, got %v", tc.want, titles(got))
				}
			}
		})
	}
}

func TestFilterDefaultCriteriaKeepDatelessTask(t *testing.T) {
	ids := model.NewIDAllocator()
	tasks := []model.Task{
		buildTask(t, ids, model.TaskInput{Title: "Buy milk"}),
	}

	// The list command passes "all" for every unset filter flag.
	criteria := Criteria{Status: All, Priority: All, DueRange: All}
	got := Filter(tasks, criteria, testNow)
	if len(got) != 1 || got[0].Title != "Buy milk" {
		t.Fatalf("expected the dateless task to survive, got %v", titles(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	tasks := fixtureTasks(t)
	criteria := Criteria{Status: StatusActive, DueRange: DueUpcoming}

	once := Filter(tasks, criteria, testNow)
	twice := Filter(once, criteria, testNow)
	if len(once) != len(twice) {
		t.Fatalf("expected same set, got %v then %v", titles(once), titles(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("expected same set, got %v then %v", titles(once), titles(twice))
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tasks := fixtureTasks(t)
	before := titles(tasks)

	_ = Filter(tasks, Criteria{Status: StatusCompleted}, testNow)

	after := titles(tasks)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated: %v became %v", before, after)
		}
	}
}

func TestSortDueDateOverdueFirst(t *testing.T) {
	tasks := fixtureTasks(t)

	got := Sort(tasks, SortDueDate, OrderAsc, testNow)
	want := []string{"Pay rent", "Call dentist", "Write report", "Read book"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("expected order %v, got %v", want, titles(got))
		}
	}

	// Overdue stays first even descending; the dateless task leads the rest.
	got = Sort(tasks, SortDueDate, OrderDesc, testNow)
	if got[0].Title != "Pay rent" {
		t.Fatalf("expected overdue task first, got %v", titles(got))
	}
	if got[1].Title != "Read book" {
		t.Fatalf("expected dateless task to lead descending, got %v", titles(got))
	}
}

func TestSortPriority(t *testing.T) {
	tasks := fixtureTasks(t)

	got := Sort(tasks, SortPriority, OrderDesc, testNow)
	if got[0].Title != "Pay rent" {
		t.Fatalf("expected high priority first, got %v", titles(got))
	}
	if got[len(got)-1].Priority != model.PriorityLow {
		t.Fatalf("expected low priority last, got %v", titles(got))
	}

	got = Sort(tasks, SortPriority, OrderAsc, testNow)
	if got[0].Priority != model.PriorityLow {
		t.Fatalf("expected low priority first, got %v", titles(got))
	}
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	ids := model.NewIDAllocator()
	tasks := []model.Task{
		buildTask(t, ids, model.TaskInput{Title: "banana"}),
		buildTask(t, ids, model.TaskInput{Title: "Apple"}),
		buildTask(t, ids, model.TaskInput{Title: "cherry"}),
	}

	got := Sort(tasks, SortTitle, OrderAsc, testNow)
	want := []string{"Apple", "banana", "cherry"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("expected %v, got %v", want, titles(got))
		}
	}
}

func TestSortCreatedAt(t *testing.T) {
	ids := model.NewIDAllocator()
	early := testNow.AddDate(0, 0, -2)
	late := testNow.AddDate(0, 0, -1)
	tasks := []model.Task{
		buildTask(t, ids, model.TaskInput{Title: "newer", CreatedAt: &late}),
		buildTask(t, ids, model.TaskInput{Title: "older", CreatedAt: &early}),
	}

	got := Sort(tasks, SortCreatedAt, OrderAsc, testNow)
	if got[0].Title != "older" {
		t.Fatalf("expected oldest first, got %v", titles(got))
	}
	got = Sort(tasks, SortCreatedAt, OrderDesc, testNow)
	if got[0].Title != "newer" {
		t.Fatalf("expected newest first, got %v", titles(got))
	}
}

func TestSortUnknownKeyFallsBackToDueDate(t *testing.T) {
	tasks := fixtureTasks(t)

	got := Sort(tasks, "bogus", OrderAsc, testNow)
	if got[0].Title != "Pay rent" {
		t.Fatalf("expected dueDate fallback with overdue first, got %v", titles(got))
	}
}

func TestSearchAndFilter(t *testing.T) {
	tasks := fixtureTasks(t)

	got := SearchAndFilter(tasks, "e", Criteria{Status: StatusActive, Priority: model.PriorityLow}, testNow)
	if len(got) != 1 || got[0].Title != "Read book" {
		t.Fatalf("expected single combined match, got %v", titles(got))
	}
}

func TestUniqueTags(t *testing.T) {
	tasks := fixtureTasks(t)
	tasks[1].Tags = append(tasks[1].Tags, "home")

	got := UniqueTags(tasks)
	want := []string{"health", "home", "money", "work"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	tasks := fixtureTasks(t)

	stats := Summarize(tasks, testNow)
	if stats.Total != 4 || stats.Active != 3 || stats.Completed != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.Overdue != 1 || stats.DueToday != 1 || stats.Upcoming != 1 {
		t.Fatalf("unexpected due buckets: %+v", stats)
	}
	if stats.ByPriority[model.PriorityLow] != 2 {
		t.Fatalf("expected 2 low priority tasks, got %d", stats.ByPriority[model.PriorityLow])
	}
	if stats.CompletionPercent != 25 {
		t.Fatalf("expected 25%% completion, got %v", stats.CompletionPercent)
	}

	empty := Summarize(nil, testNow)
	if empty.Total != 0 || empty.CompletionPercent != 0 {
		t.Fatalf("unexpected empty stats: %+v", empty)
	}
}
