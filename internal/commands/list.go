package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/tasker/internal/query"
)

func newListCmd(app *App) *cobra.Command {
	var (
		status   string
		priority string
		tags     []string
		dueRange string
		search   string
		sortBy   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional filtering and sorting",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			criteria := query.Criteria{
				Status:   status,
				Priority: priority,
				Tags:     tags,
				DueRange: dueRange,
			}
			tasks := query.SearchAndFilter(app.Tasks, search, criteria, now)
			tasks = query.Sort(tasks, sortBy, order, now)
			printTaskList(cmd.OutOrStdout(), tasks, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", query.All, "filter by status (active, completed, all)")
	cmd.Flags().StringVar(&priority, "priority", query.All, "filter by priority (low, medium, high, all)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tags (comma-separated, any match)")
	cmd.Flags().StringVar(&dueRange, "due-date", query.All, "filter by due date range (all, today, upcoming, overdue, no-date)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search in title or description")
	cmd.Flags().StringVar(&sortBy, "sort", query.SortDueDate, "sort by field (dueDate, priority, createdAt, title)")
	cmd.Flags().StringVar(&order, "order", query.OrderAsc, "sort order (asc, desc)")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks by title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			tasks := query.Sort(query.Search(app.Tasks, args[0]), query.SortDueDate, query.OrderAsc, now)
			printTaskList(cmd.OutOrStdout(), tasks, now)
			return nil
		},
	}
}
