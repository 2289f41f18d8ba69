package task

import (
	"sort"
	"time"

	"github.com/jinzhu/now"
)

// Filter holds the values of one tab's filter scope. Zero values mean "all".
type Filter struct {
	// Role matches the executor's role.
	Role Role `json:"role"`

	// UserID matches the executor or the author.
	UserID int `json:"user"`

	Project string     `json:"project"`
	Date    DateBucket `json:"date"`

	// Status matches the effective status, so an in-progress task past its
	// deadline matches "overdue" and not "in_progress".
	Status Status `json:"status"`
}

// DefaultFilter returns the filter a tab starts with before anything is stored.
func DefaultFilter(tab Tab) Filter {
	return Filter{Status: DefaultStatusFilter(tab)}
}

// DefaultStatusFilter is in_progress for regular tasks and all for templates.
func DefaultStatusFilter(tab Tab) Status {
	if tab == TabRecurring {
		return ""
	}
	return StatusInProgress
}

// InTab reports whether t belongs to tab.
func InTab(t Task, tab Tab) bool {
	if tab == TabRecurring {
		return t.IsRecurring
	}
	return !t.IsRecurring
}

// Partition splits tasks into regular tasks and recurring templates,
// preserving input order.
func Partition(tasks []Task) (regular, recurring []Task) {
	regular = make([]Task, 0, len(tasks))
	recurring = make([]Task, 0)
	for _, t := range tasks {
		if t.IsRecurring {
			recurring = append(recurring, t)
		} else {
			regular = append(regular, t)
		}
	}
	return regular, recurring
}

// Derive computes the visible rows of a tab: tasks in the tab that match
// filter at now, sorted by priority and then newest first. The input slice
// is not modified.
func Derive(tasks []Task, users []User, tab Tab, filter Filter, at time.Time) []Task {
	byID := UserByID(users)
	var window dateWindow
	if filter.Date != DateAll {
		window = bucketWindow(filter.Date, at)
	}

	rows := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !InTab(t, tab) {
			continue
		}
		if !matchesFilter(t, byID, filter, window, at) {
			continue
		}
		rows = append(rows, t)
	}
	SortTasks(rows)
	return rows
}

// SortTasks orders tasks by high priority first, then by creation time,
// newest first. Ties keep their input order.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].HighPriority != tasks[j].HighPriority {
			return tasks[i].HighPriority
		}
		return timeOf(tasks[i].CreatedAt).After(timeOf(tasks[j].CreatedAt))
	})
}

func matchesFilter(t Task, users map[int]User, filter Filter, window dateWindow, at time.Time) bool {
	if filter.Role != "" {
		executor, ok := users[t.ExecutorID]
		if !ok || !sameRole(executor.Role, filter.Role) {
			return false
		}
	}
	if filter.UserID != 0 && t.ExecutorID != filter.UserID && t.AuthorID != filter.UserID {
		return false
	}
	if filter.Project != "" && t.Project != filter.Project {
		return false
	}
	if filter.Date != DateAll && !window.contains(timeOf(t.CreatedAt)) {
		return false
	}
	if filter.Status != "" && EffectiveStatus(t, at) != normalizeStatus(filter.Status) {
		return false
	}
	return true
}

func sameRole(a, b Role) bool {
	a, b = normalizeRole(a), normalizeRole(b)
	if a.IsAdmin() && b.IsAdmin() {
		return true
	}
	return a == b
}

type dateWindow struct {
	start, end time.Time
}

func (w dateWindow) contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.start) && !t.After(w.end)
}

// bucketWindow returns the calendar period containing at. Weeks start on Monday.
func bucketWindow(bucket DateBucket, at time.Time) dateWindow {
	cal := &now.Config{WeekStartDay: time.Monday, TimeLocation: at.Location()}
	n := cal.With(at)
	switch bucket {
	case DateToday:
		return dateWindow{start: n.BeginningOfDay(), end: n.EndOfDay()}
	case DateWeek:
		return dateWindow{start: n.BeginningOfWeek(), end: n.EndOfWeek()}
	case DateMonth:
		return dateWindow{start: n.BeginningOfMonth(), end: n.EndOfMonth()}
	default:
		return dateWindow{}
	}
}
