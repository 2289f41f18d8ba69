// Package boardtui is the interactive task board: two tabs of task rows
// with a live countdown, per-tab persisted filters and keyboard actions.
package boardtui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/agency/board"
	"github.com/amonks/agency/internal/localstore"
	internalstrings "github.com/amonks/agency/internal/strings"
	"github.com/amonks/agency/internal/ui"
	"github.com/amonks/agency/task"
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalConfirmAction
)

var statusCycle = []task.Status{"", task.StatusNew, task.StatusInProgress, task.StatusDone, task.StatusOverdue}

type model struct {
	ctx         context.Context
	board       *board.Board
	store       *localstore.Store
	ticks       <-chan time.Time
	width       int
	height      int
	activeTab   task.Tab
	filters     map[task.Tab]task.Filter
	taskList    list.Model
	now         time.Time
	modal       confirmModal
	status      string
	statusLevel statusLevel
	selectedID  int
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
	action      task.Action
	taskID      int
}

// Run shows the board until the user quits or ctx is done.
func Run(ctx context.Context, b *board.Board, store *localstore.Store, interval time.Duration) error {
	if b == nil {
		return fmt.Errorf("board is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, b, store, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, b *board.Board, store *localstore.Store, interval time.Duration) model {
	taskList := list.New(nil, newTaskItemDelegate(), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)

	if interval <= 0 {
		interval = time.Second
	}

	return model{
		ctx:       ctx,
		board:     b,
		store:     store,
		ticks:     board.Tick(ctx, interval),
		activeTab: board.LoadActiveTab(store),
		filters: map[task.Tab]task.Filter{
			task.TabRegular:   board.LoadFilter(store, task.TabRegular),
			task.TabRecurring: board.LoadFilter(store, task.TabRecurring),
		},
		taskList: taskList,
		now:      b.Now(),
		modal:    confirmModal{kind: modalNone},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal.kind != modalNone {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m.updateModal(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.now = time.Time(msg)
		m.rebuildRows()
		return m, m.tickCmd()
	case loadedMsg:
		m.rebuildRows()
		m.setStatus(fmt.Sprintf("Loaded %d tasks", len(m.board.Tasks())), statusInfo)
		return m, nil
	case actionDoneMsg:
		m.handleActionDone(msg)
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading task board..."
	}
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)

	listPane := m.renderPane(m.taskList.View(), leftWidth, contentHeight, true)
	detailPane := m.renderPane(m.detailView(), rightWidth, contentHeight, false)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	view := strings.Join([]string{m.renderTabs(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.modal = confirmModal{kind: modalHelp}
		return m, nil
	case key.Matches(msg, keys.NextTab), key.Matches(msg, keys.PrevTab):
		return m.activateTab(otherTab(m.activeTab)), nil
	case key.Matches(msg, keys.Regular):
		return m.activateTab(task.TabRegular), nil
	case key.Matches(msg, keys.Recurring):
		return m.activateTab(task.TabRecurring), nil
	case key.Matches(msg, keys.Up):
		return m.moveSelection(-1), nil
	case key.Matches(msg, keys.Down):
		return m.moveSelection(1), nil
	case key.Matches(msg, keys.Refresh):
		m.setStatus("Refreshing...", statusInfo)
		return m, m.loadCmd()
	case key.Matches(msg, keys.CycleStatus):
		return m.cycleStatusFilter(), nil
	case key.Matches(msg, keys.ResetFilter):
		return m.resetFilter(), nil
	}

	for _, binding := range actionBindings() {
		if key.Matches(msg, binding.binding) {
			return m.requestAction(binding.action)
		}
	}
	return m, nil
}

func otherTab(tab task.Tab) task.Tab {
	if tab == task.TabRecurring {
		return task.TabRegular
	}
	return task.TabRecurring
}

func (m model) activateTab(target task.Tab) model {
	if target == m.activeTab {
		return m
	}
	m.activeTab = target
	board.SaveActiveTab(m.store, target)
	m.selectedID = 0
	m.rebuildRows()
	return m
}

func (m model) cycleStatusFilter() model {
	filter := m.filters[m.activeTab]
	next := statusCycle[0]
	for i, status := range statusCycle {
		if status == filter.Status {
			next = statusCycle[(i+1)%len(statusCycle)]
			break
		}
	}
	filter.Status = next
	m.filters[m.activeTab] = filter
	board.SaveFilter(m.store, m.activeTab, filter)
	m.rebuildRows()
	m.setStatus("Status filter: "+statusFilterLabel(next, m.activeTab == task.TabRecurring), statusInfo)
	return m
}

func (m model) resetFilter() model {
	filter := task.DefaultFilter(m.activeTab)
	m.filters[m.activeTab] = filter
	board.SaveFilter(m.store, m.activeTab, filter)
	m.rebuildRows()
	m.setStatus("Filters reset", statusInfo)
	return m
}

func statusFilterLabel(status task.Status, template bool) string {
	if status == "" {
		return "all"
	}
	return task.StatusLabel(status, template)
}

func (m model) requestAction(action task.Action) (tea.Model, tea.Cmd) {
	item, ok := m.currentItem()
	if !ok {
		m.setStatus("No task selected", statusError)
		return m, nil
	}
	t := item.task
	if err := task.Authorize(m.board.Viewer(), t, action, m.now); err != nil {
		m.setStatus(describeError(err), statusError)
		return m, nil
	}
	if needsConfirm(action) {
		m.modal = confirmModal{
			kind:        modalConfirmAction,
			message:     fmt.Sprintf("%s task %d?", task.ActionLabel(action, t.IsTemplate()), t.ID),
			confirmText: task.ActionLabel(action, t.IsTemplate()),
			cancelText:  "Cancel",
			selected:    1,
			action:      action,
			taskID:      t.ID,
		}
		return m, nil
	}
	return m, m.actionCmd(action, t.ID)
}

func describeError(err error) string {
	switch {
	case errors.Is(err, task.ErrForbidden):
		return "Not allowed: " + err.Error()
	case errors.Is(err, task.ErrInvalidTransition), errors.Is(err, task.ErrNotTemplate):
		return "Not available: " + err.Error()
	default:
		return err.Error()
	}
}

func (m *model) handleActionDone(msg actionDoneMsg) {
	m.rebuildRows()
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s failed: %s", msg.action, describeError(msg.err)), statusError)
		return
	}
	m.setStatus(fmt.Sprintf("%s: task %d", task.ActionLabel(msg.action, msg.template), msg.taskID), statusInfo)
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.modal.kind == modalHelp {
		switch {
		case key.Matches(keyMsg, keys.Help), keyMsg.String() == "esc":
			m.modal = confirmModal{kind: modalNone}
		case keyMsg.String() == "ctrl+c", keyMsg.String() == "q":
			return m, tea.Quit
		}
		return m, nil
	}
	switch keyMsg.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "enter":
		return m.resolveModal(m.modal.selected == 0)
	case "y":
		return m.resolveModal(true)
	case "esc", "n":
		return m.resolveModal(false)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	modal := m.modal
	m.modal = confirmModal{kind: modalNone}
	if !confirm || modal.kind != modalConfirmAction {
		return m, nil
	}
	return m, m.actionCmd(modal.action, modal.taskID)
}

func (m *model) rebuildRows() {
	rows := m.board.Rows(m.activeTab, m.filters[m.activeTab], m.now)
	items := make([]list.Item, 0, len(rows))
	selected := 0
	for i, t := range rows {
		items = append(items, taskItem{task: t, now: m.now})
		if t.ID == m.selectedID {
			selected = i
		}
	}
	m.taskList.SetItems(items)
	if len(items) == 0 {
		m.selectedID = 0
		return
	}
	m.taskList.Select(selected)
	m.selectedID = rows[selected].ID
}

func (m model) moveSelection(delta int) model {
	items := m.taskList.Items()
	if len(items) == 0 {
		return m
	}
	next := m.taskList.Index() + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	m.taskList.Select(next)
	if item, ok := m.currentItem(); ok {
		m.selectedID = item.task.ID
	}
	return m
}

func (m model) currentItem() (taskItem, bool) {
	item := m.taskList.SelectedItem()
	if item == nil {
		return taskItem{}, false
	}
	current, ok := item.(taskItem)
	return current, ok
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, _ := splitWidths(m.width)
	listHeight := contentHeight - 2
	if listHeight < 1 {
		listHeight = 1
	}
	listWidth := leftWidth - 4
	if listWidth < 1 {
		listWidth = 1
	}
	m.taskList.SetSize(listWidth, listHeight)
}

func splitWidths(width int) (int, int) {
	left := width / 2
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) detailView() string {
	item, ok := m.currentItem()
	if !ok {
		return valueMuted.Render("No tasks match the current filters.")
	}
	t := item.task
	users := task.UserByID(m.board.Users())
	template := t.IsTemplate()

	rows := []string{
		labelStyle.Render(internalstrings.NormalizeWhitespace(t.Title)),
		"",
		formatDetailRow("ID", fmt.Sprintf("%d", t.ID)),
		formatDetailRow("Status", task.StatusLabel(task.EffectiveStatus(t, m.now), template)),
		formatDetailRow("Priority", priorityLabel(t.HighPriority)),
		formatDetailRow("Project", t.Project),
		formatDetailRow("Type", t.TaskType),
		formatDetailRow("Format", t.TaskFormat),
		formatDetailRow("Author", userName(users, t.AuthorID)),
		formatDetailRow("Executor", userName(users, t.ExecutorID)),
	}
	if template {
		rows = append(rows, formatDetailRow("Schedule", task.RecurrenceRule(t)))
		if next, ok := task.NextRun(t, m.now); ok {
			rows = append(rows, formatDetailRow("Next run", ui.FormatTime(next)))
		}
	} else {
		deadline := time.Time{}
		if t.Deadline != nil {
			deadline = t.Deadline.Time
		}
		rows = append(rows, formatDetailRow("Deadline", ui.FormatTime(deadline)))
		left, hasDeadline := task.TimeLeft(t, m.now)
		rows = append(rows, formatDetailRow("Time left", ui.FormatCountdown(left, hasDeadline)))
		if worked, ok := task.WorkDuration(t, m.now); ok {
			rows = append(rows, formatDetailRow("Worked", ui.FormatDurationShort(worked)))
		}
	}

	actions := task.Actions(m.board.Viewer(), t, m.now)
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, task.ActionLabel(action, template))
	}
	rows = append(rows, formatDetailRow("Actions", strings.Join(labels, ", ")))

	if !internalstrings.IsBlank(t.Description) {
		rows = append(rows, "", internalstrings.NormalizeNewlines(t.Description))
	}
	return strings.Join(rows, "\n")
}

func formatDetailRow(label, value string) string {
	return fmt.Sprintf("%s: %s", labelStyle.Render(label), valueMuted.Render(valueOrDash(value)))
}

func valueOrDash(value string) string {
	if internalstrings.IsBlank(value) {
		return "-"
	}
	return value
}

func priorityLabel(high bool) string {
	if high {
		return "high"
	}
	return "normal"
}

func userName(users map[int]task.User, id int) string {
	if id == 0 {
		return ""
	}
	if u, ok := users[id]; ok {
		return u.Name
	}
	return fmt.Sprintf("user %d", id)
}

func (m model) renderTabs() string {
	tabs := []struct {
		tab   task.Tab
		label string
	}{
		{task.TabRegular, "[1] Tasks"},
		{task.TabRecurring, "[2] Recurring"},
	}
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := tabInactiveStyle
		if tab.tab == m.activeTab {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(tab.label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	filter := m.filters[m.activeTab]
	hint := valueMuted.Render("status: " + statusFilterLabel(filter.Status, m.activeTab == task.TabRecurring) + "  ? help")
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(hint)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return tabBarStyle.Width(m.width).Render(content + strings.Repeat(" ", spacerWidth) + hint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(m.status)
}

func (m model) renderHelpLine() string {
	text := "Keys: up/down move | a accept | c complete | r resume | p priority | D delete | f status | tab switch | ? help | q quit"
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	if m.modal.kind == modalHelp {
		return modalStyle.Render(helpContent())
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	return modalStyle.Render(content)
}

func helpContent() string {
	bindings := []key.Binding{
		keys.NextTab, keys.Regular, keys.Recurring, keys.Up, keys.Down,
		keys.Accept, keys.Complete, keys.Resume, keys.Priority, keys.StopRecurring, keys.Delete,
		keys.CycleStatus, keys.ResetFilter, keys.Refresh, keys.Help, keys.Quit,
	}
	lines := []string{labelStyle.Render("Keys")}
	for _, binding := range bindings {
		help := binding.Help()
		lines = append(lines, fmt.Sprintf("%s: %s", help.Key, help.Desc))
	}
	return strings.Join(lines, "\n")
}

func (m model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.board.Load(m.ctx)
		return loadedMsg{}
	}
}

func (m model) tickCmd() tea.Cmd {
	return func() tea.Msg {
		now, ok := <-m.ticks
		if !ok {
			return nil
		}
		return tickMsg(now)
	}
}

func (m model) actionCmd(action task.Action, id int) tea.Cmd {
	template := false
	if t, err := m.board.Task(id); err == nil {
		template = t.IsTemplate()
	}
	return func() tea.Msg {
		err := m.board.Apply(m.ctx, action, id)
		return actionDoneMsg{action: action, taskID: id, template: template, err: err}
	}
}

type tickMsg time.Time

type loadedMsg struct{}

type actionDoneMsg struct {
	action   task.Action
	taskID   int
	template bool
	err      error
}
