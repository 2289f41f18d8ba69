package boardtui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/amonks/agency/task"
)

type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	Regular       key.Binding
	Recurring     key.Binding
	Up            key.Binding
	Down          key.Binding
	Refresh       key.Binding
	CycleStatus   key.Binding
	ResetFilter   key.Binding
	Accept        key.Binding
	Complete      key.Binding
	Resume        key.Binding
	Priority      key.Binding
	StopRecurring key.Binding
	Delete        key.Binding
}

var keys = keyMap{
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	NextTab:       key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab", "next tab")),
	PrevTab:       key.NewBinding(key.WithKeys("shift+tab", "backtab", "["), key.WithHelp("shift+tab", "previous tab")),
	Regular:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "regular tasks")),
	Recurring:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "recurring tasks")),
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "move up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "move down")),
	Refresh:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	CycleStatus:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle status filter")),
	ResetFilter:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset filters")),
	Accept:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
	Complete:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete / pause")),
	Resume:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
	Priority:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle priority")),
	StopRecurring: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop recurring")),
	Delete:        key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
}

// actionBindings maps row action keys to task actions.
func actionBindings() []struct {
	binding key.Binding
	action  task.Action
} {
	return []struct {
		binding key.Binding
		action  task.Action
	}{
		{keys.Accept, task.ActionAccept},
		{keys.Complete, task.ActionComplete},
		{keys.Resume, task.ActionResume},
		{keys.Priority, task.ActionPriority},
		{keys.StopRecurring, task.ActionStopRecurring},
		{keys.Delete, task.ActionDelete},
	}
}

// needsConfirm reports whether action asks before it runs.
func needsConfirm(action task.Action) bool {
	return action == task.ActionDelete || action == task.ActionStopRecurring
}
