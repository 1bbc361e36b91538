package tui

import (
	"fmt"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/tasker/internal/model"
	"github.com/Joseda-hg/tasker/internal/query"
	"github.com/Joseda-hg/tasker/internal/store"
)

const (
	viewHeader = "header"
	viewTasks  = "tasks"
	viewDetail = "detail"
	viewFooter = "footer"
	viewSearch = "search"
)

type UI struct {
	store store.Store
	ids   *model.IDAllocator
	gui   *gocui.Gui

	tasks   []model.Task
	visible []model.Task

	criteria  query.Criteria
	search    string
	sortKey   string
	sortOrder string

	selected     int
	searchActive bool
	status       string
}

func Run(taskStore store.Store, ids *model.IDAllocator) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := &UI{
		store:     taskStore,
		ids:       ids,
		gui:       gui,
		criteria:  query.Criteria{Priority: query.All},
		sortKey:   query.SortDueDate,
		sortOrder: query.OrderAsc,
	}

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.loadTasks(); err != nil {
		return err
	}

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}

	return nil
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	if err := gui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'q', gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'r', gocui.ModNone, u.reload); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'g', gocui.ModNone, u.clearFilters); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", '/', gocui.ModNone, u.startSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 's', gocui.ModNone, u.cycleSort); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'o', gocui.ModNone, u.toggleOrder); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'f', gocui.ModNone, u.cycleDueRange); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'c', gocui.ModNone, u.cycleStatus); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyArrowDown, gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'j', gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyArrowUp, gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'k', gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeySpace, gocui.ModNone, u.toggleComplete); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'd', gocui.ModNone, u.deleteTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewSearch, gocui.KeyEnter, gocui.ModNone, u.submitSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewSearch, gocui.KeyEsc, gocui.ModNone, u.cancelSearch); err != nil {
		return err
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = true
	headerView.FgColor = gocui.ColorDefault
	u.renderHeader(headerView)

	footerY1 := maxY - 1
	if footerY1 < 1 {
		footerY1 = 1
	}
	footerY0 := footerY1 - 1
	if footerY0 < 1 {
		footerY0 = 1
	}
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom < bodyTop {
		return nil
	}

	listWidth := maxX / 2
	if listWidth < 30 {
		listWidth = maxX - 1
	}

	tasksView, err := gui.SetView(viewTasks, 0, bodyTop, listWidth-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		tasksView.Title = "Tasks"
		tasksView.TitleColor = gocui.ColorCyan
	}
	applyViewStyle(tasksView, true)
	u.renderTaskList(tasksView)

	if listWidth < maxX-1 {
		detailView, err := gui.SetView(viewDetail, listWidth, bodyTop, maxX-1, bodyBottom, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			detailView.Title = "Detail"
		}
		applyViewStyle(detailView, false)
		u.renderDetail(detailView)
	}

	if u.searchActive {
		if err := u.showSearch(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewSearch)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(viewTasks)
	}

	gui.Cursor = u.searchActive

	return nil
}

func (u *UI) loadTasks() error {
	tasks, err := u.store.Load()
	if err != nil {
		return err
	}
	u.tasks = tasks
	u.refresh()
	return nil
}

func (u *UI) refresh() {
	now := time.Now()
	filtered := query.SearchAndFilter(u.tasks, u.search, u.criteria, now)
	u.visible = query.Sort(filtered, u.sortKey, u.sortOrder, now)
	if u.selected >= len(u.visible) {
		u.selected = max(len(u.visible)-1, 0)
	}
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	searchLabel := u.search
	if searchLabel == "" {
		searchLabel = "type / to search"
	}
	statusLabel := u.criteria.Status
	if statusLabel == "" {
		statusLabel = "any"
	}
	dueLabel := u.criteria.DueRange
	if dueLabel == "" {
		dueLabel = "any"
	}
	fmt.Fprintf(view, "Search: %s | Status: %s | Due: %s | Sort: %s %s",
		searchLabel, statusLabel, dueLabel, u.sortKey, u.sortOrder)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	fmt.Fprint(view, "j/k move | space toggle | d delete | / search | c status | f due | s sort | o order | g clear | r reload | q quit")
	if u.status != "" {
		fmt.Fprintf(view, "\n%s", u.status)
	}
}

func (u *UI) renderTaskList(view *gocui.View) {
	view.Clear()
	now := time.Now()
	for i, task := range u.visible {
		prefix := " "
		if i == u.selected {
			prefix = ">"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatTaskLine(task, now))
	}
	if len(u.visible) > 0 {
		view.SetCursor(0, min(u.selected, len(u.visible)-1))
	}
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	selected := u.selectedTask()
	if selected == nil {
		fmt.Fprint(view, "No task selected")
		return
	}
	fmt.Fprint(view, formatTaskDetail(*selected, time.Now()))
}

func (u *UI) selectedTask() *model.Task {
	if u.selected >= 0 && u.selected < len(u.visible) {
		return &u.visible[u.selected]
	}
	return nil
}

func (u *UI) moveDown(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	if u.selected < len(u.visible)-1 {
		u.selected++
	}
	return nil
}

func (u *UI) moveUp(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	if u.selected > 0 {
		u.selected--
	}
	return nil
}

func (u *UI) toggleComplete(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	task, ok := model.FindTask(u.tasks, selected.ID)
	if !ok {
		return nil
	}

	completed := !task.Completed
	if err := task.Update(model.TaskPatch{Completed: &completed}); err != nil {
		u.status = err.Error()
		return nil
	}
	if err := u.store.Save(u.tasks); err != nil {
		u.status = err.Error()
		return nil
	}
	u.status = ""
	u.refresh()
	return nil
}

func (u *UI) deleteTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}

	remaining := make([]model.Task, 0, len(u.tasks))
	for _, task := range u.tasks {
		if task.ID != selected.ID {
			remaining = append(remaining, task)
		}
	}
	if err := u.store.Save(remaining); err != nil {
		u.status = err.Error()
		return nil
	}
	u.tasks = remaining
	u.status = ""
	u.refresh()
	return nil
}

func (u *UI) reload(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	u.status = ""
	return u.loadTasks()
}

func (u *UI) clearFilters(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	u.search = ""
	u.criteria = query.Criteria{Priority: query.All}
	u.refresh()
	return nil
}

func (u *UI) cycleSort(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	order := []string{query.SortDueDate, query.SortPriority, query.SortCreatedAt, query.SortTitle}
	u.sortKey = cycleValue(order, u.sortKey, 1)
	u.refresh()
	return nil
}

func (u *UI) toggleOrder(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	if u.sortOrder == query.OrderAsc {
		u.sortOrder = query.OrderDesc
	} else {
		u.sortOrder = query.OrderAsc
	}
	u.refresh()
	return nil
}

func (u *UI) cycleDueRange(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	order := []string{"", query.DueOverdue, query.DueToday, query.DueUpcoming, query.DueNoDate}
	u.criteria.DueRange = cycleValue(order, u.criteria.DueRange, 1)
	u.refresh()
	return nil
}

func (u *UI) cycleStatus(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	order := []string{"", query.StatusActive, query.StatusCompleted}
	u.criteria.Status = cycleValue(order, u.criteria.Status, 1)
	u.refresh()
	return nil
}

func (u *UI) startSearch(gui *gocui.Gui, _ *gocui.View) error {
	if u.searchActive {
		return nil
	}
	u.searchActive = true
	return nil
}

func (u *UI) showSearch(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(30, maxX/2)
	height := 3
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewSearch, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Search"
		view.Wrap = true
		view.Clear()
		fmt.Fprint(view, u.search)
	}
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	_, _ = gui.SetCurrentView(viewSearch)
	return nil
}

func (u *UI) submitSearch(gui *gocui.Gui, view *gocui.View) error {
	u.search = strings.TrimSpace(view.Buffer())
	u.searchActive = false
	u.status = ""
	_ = gui.DeleteView(viewSearch)
	_, _ = gui.SetCurrentView(viewTasks)
	u.refresh()
	return nil
}

func (u *UI) cancelSearch(gui *gocui.Gui, _ *gocui.View) error {
	u.searchActive = false
	_ = gui.DeleteView(viewSearch)
	_, _ = gui.SetCurrentView(viewTasks)
	return nil
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func applyViewStyle(view *gocui.View, focused bool) {
	view.Frame = true
	view.Highlight = focused
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	if focused {
		view.FrameColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}

func cycleValue(order []string, current string, delta int) string {
	index := 0
	for i, value := range order {
		if value == current {
			index = i
			break
		}
	}
	index = (index + delta + len(order)) % len(order)
	return order[index]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
