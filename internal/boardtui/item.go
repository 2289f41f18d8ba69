package boardtui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	internalstrings "github.com/amonks/agency/internal/strings"
	"github.com/amonks/agency/internal/ui"
	"github.com/amonks/agency/task"
)

type taskItem struct {
	task task.Task
	now  time.Time
}

func (item taskItem) FilterValue() string {
	return item.task.Title
}

type taskItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	doneStyle     lipgloss.Style
	overdueStyle  lipgloss.Style
}

func newTaskItemDelegate() taskItemDelegate {
	return taskItemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")),
		doneStyle:     valueMuted,
		overdueStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	line := formatTaskItem(item, m.Width())
	style := d.normalStyle
	switch {
	case index == m.Index():
		style = d.selectedStyle
	case task.EffectiveStatus(item.task, item.now) == task.StatusOverdue:
		style = d.overdueStyle
	case item.task.Status == task.StatusDone:
		style = d.doneStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTaskItem(item taskItem, width int) string {
	t := item.task
	title := internalstrings.NormalizeWhitespace(t.Title)
	if title == "" {
		title = "(untitled)"
	}
	marker := " "
	if t.HighPriority {
		marker = "!"
	}
	status := task.StatusLabel(task.EffectiveStatus(t, item.now), t.IsTemplate())
	line := fmt.Sprintf("%s %d  %s  [%s]", marker, t.ID, title, status)
	if left, ok := task.TimeLeft(t, item.now); ok && t.Status != task.StatusDone {
		line += "  " + ui.FormatCountdown(left, ok)
	}
	if rule := task.RecurrenceRule(t); rule != "" {
		line += "  " + rule
	}
	return truncateText(line, width)
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return truncate.StringWithTail(value, uint(width), "...")
}
