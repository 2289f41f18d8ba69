package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/agency/board"
	internalstrings "github.com/amonks/agency/internal/strings"
	"github.com/amonks/agency/internal/ui"
	"github.com/amonks/agency/task"
)

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}

	tab := board.LoadActiveTab(a.store)
	if cmd.Flags().Changed("tab") {
		tab, err = task.ParseTab(taskListTab)
		if err != nil {
			return err
		}
		board.SaveActiveTab(a.store, tab)
	}

	filter := board.LoadFilter(a.store, tab)
	if taskListReset {
		filter = task.DefaultFilter(tab)
	}
	filter, err = applyListFlags(cmd, b, filter)
	if err != nil {
		return err
	}
	if taskListReset || hasChangedFlags(cmd, listFilterFlags...) {
		board.SaveFilter(a.store, tab, filter)
	}

	now := b.Now()
	rows := b.Rows(tab, filter, now)
	if taskListJSON {
		return writeJSON(cmd, rows)
	}
	if len(rows) == 0 {
		fmt.Println(taskEmptyListMessage(len(b.Tasks()), tab, filter))
		return nil
	}
	fmt.Print(formatTaskTable(rows, tab, b.Viewer(), b.Users(), now, ui.ColorEnabled()))
	return nil
}

// applyListFlags overlays the changed filter flags on filter and checks them
// against the viewer's filter options.
func applyListFlags(cmd *cobra.Command, b *board.Board, filter task.Filter) (task.Filter, error) {
	opts := task.FilterOptionsFor(b.Viewer())

	if cmd.Flags().Changed("role") {
		role, err := task.ParseRole(allToEmpty(taskListRole))
		if err != nil {
			return filter, err
		}
		if role != "" && !opts.ShowRoleFilter() {
			return filter, fmt.Errorf("%w: the role filter is not available to %s users", task.ErrForbidden, b.Viewer().Role)
		}
		filter.Role = role
	}
	if cmd.Flags().Changed("user") {
		if taskListUser != 0 && !offersUser(task.FilterUsers(opts, b.Users()), taskListUser) {
			return filter, fmt.Errorf("%w: user %d is not offered by the user filter", task.ErrForbidden, taskListUser)
		}
		filter.UserID = taskListUser
	}
	if cmd.Flags().Changed("project") {
		filter.Project = allToEmpty(taskListProject)
	}
	if cmd.Flags().Changed("date") {
		bucket, err := task.ParseDateBucket(taskListDate)
		if err != nil {
			return filter, err
		}
		filter.Date = bucket
	}
	if cmd.Flags().Changed("status") {
		status, err := task.ParseStatus(allToEmpty(taskListStatus))
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	return filter, nil
}

func allToEmpty(value string) string {
	if internalstrings.NormalizeLowerTrimSpace(value) == "all" {
		return ""
	}
	return internalstrings.TrimSpace(value)
}

func offersUser(users []task.User, id int) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func formatTaskTable(rows []task.Task, tab task.Tab, viewer task.Viewer, users []task.User, now time.Time, color bool) string {
	byID := task.UserByID(users)
	headers := []string{"ID", "PRI", "STATUS", "TITLE", "PROJECT", "EXECUTOR", "DEADLINE", "LEFT", "ACTIONS"}
	if tab == task.TabRecurring {
		headers = []string{"ID", "PRI", "STATUS", "TITLE", "PROJECT", "EXECUTOR", "SCHEDULE", "NEXT RUN", "ACTIONS"}
	}
	builder := ui.NewTableBuilder(headers, len(rows))

	for _, t := range rows {
		status := ui.FormatStatus(task.EffectiveStatus(t, now), t.IsTemplate(), color)
		row := []string{
			strconv.Itoa(t.ID),
			ui.FormatPriority(t.HighPriority, color),
			status,
			ui.TruncateTableCell(internalstrings.NormalizeWhitespace(t.Title)),
			dashIfEmpty(t.Project),
			dashIfEmpty(userName(byID, t.ExecutorID)),
		}
		if tab == task.TabRecurring {
			next := "-"
			if at, ok := task.NextRun(t, now); ok {
				next = ui.FormatTime(at)
			}
			row = append(row, dashIfEmpty(task.RecurrenceRule(t)), next)
		} else {
			deadline := time.Time{}
			if t.Deadline != nil {
				deadline = t.Deadline.Time
			}
			left := "-"
			if t.Status != task.StatusDone {
				left = ui.FormatCountdown(task.TimeLeft(t, now))
			}
			row = append(row, ui.FormatTime(deadline), left)
		}
		row = append(row, formatActions(task.Actions(viewer, t, now)))
		builder.AddRow(row)
	}
	return builder.String()
}

func formatActions(actions []task.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = string(action)
	}
	return strings.Join(names, ",")
}

func userName(users map[int]task.User, id int) string {
	if id == 0 {
		return ""
	}
	if u, ok := users[id]; ok {
		return u.Name
	}
	return "#" + strconv.Itoa(id)
}

func dashIfEmpty(value string) string {
	if internalstrings.IsBlank(value) {
		return "-"
	}
	return value
}

func taskEmptyListMessage(total int, tab task.Tab, filter task.Filter) string {
	noun := "tasks"
	if tab == task.TabRecurring {
		noun = "recurring tasks"
	}
	if total == 0 {
		return fmt.Sprintf("No %s found.", noun)
	}
	if filter.Status != "" {
		return fmt.Sprintf("No %s found with status %s. Use --status all to include every status.",
			noun, task.StatusLabel(filter.Status, tab == task.TabRecurring))
	}
	if filter != (task.Filter{}) {
		return fmt.Sprintf("No %s match the saved filters. Use --reset to clear them.", noun)
	}
	return fmt.Sprintf("No %s found.", noun)
}
