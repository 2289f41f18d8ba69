package boardtui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/amonks/agency/api"
	"github.com/amonks/agency/board"
	"github.com/amonks/agency/internal/localstore"
	"github.com/amonks/agency/internal/testsupport"
	"github.com/amonks/agency/task"
)

const (
	screenWidth  = 120
	screenHeight = 26
)

var boardNow = time.Date(2026, 1, 20, 10, 0, 0, 0, time.Local)

func boardSeed() testsupport.Seed {
	return testsupport.Seed{
		Token: "secret",
		Users: []task.User{
			{ID: 3, Name: "Sasha", Role: task.RoleSMMManager},
			{ID: 5, Name: "Dima", Role: task.RoleDesigner},
			{ID: 9, Name: "Olga", Role: task.RoleDigital},
		},
		Tasks: []task.Task{
			{
				ID: 1, Title: "Spring banner", AuthorID: 3, ExecutorID: 5,
				Status:    task.StatusInProgress,
				CreatedAt: task.NewTimestamp(boardNow.Add(-2 * time.Hour)),
				Deadline:  task.NewTimestamp(boardNow.Add(30 * time.Second)),
			},
			{
				ID: 2, Title: "Reels script", AuthorID: 3, ExecutorID: 5,
				Status:    task.StatusNew,
				CreatedAt: task.NewTimestamp(boardNow.Add(-time.Hour)),
			},
			{
				ID: 3, Title: "Weekly digest", AuthorID: 3, ExecutorID: 5,
				Status: task.StatusInProgress, IsRecurring: true,
				RecurrenceType: task.RecurrenceWeekly, RecurrenceTime: "10:00", RecurrenceDays: "1,3",
				CreatedAt: task.NewTimestamp(boardNow.Add(-24 * time.Hour)),
			},
		},
	}
}

func newTestModel(t *testing.T, viewer task.Viewer) (model, *testsupport.FakeBackend, *localstore.Store) {
	t.Helper()
	backend := testsupport.NewFakeBackend(boardSeed())
	backend.Now = func() time.Time { return boardNow }
	server := backend.Start(t)
	client := api.NewClient(server.URL, api.WithToken(func() string { return "secret" }))

	b := board.New(client, viewer, board.WithClock(func() time.Time { return boardNow }))
	b.Load(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := localstore.New(localstore.NewMemoryPort(), zerolog.Nop())
	m := newModel(ctx, b, store, time.Second)
	m.width = screenWidth
	m.height = screenHeight
	m.resize()
	m.rebuildRows()
	return m, backend, store
}

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func press(t *testing.T, m model, keyName string) (model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch keyName {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keyName)}
	}
	updated, cmd := m.Update(msg)
	return updated.(model), cmd
}

func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(model)
}

func TestViewShowsRegularTab(t *testing.T) {
	useASCIIRenderer(t)
	assert := assert.New(t)

	m, _, _ := newTestModel(t, task.Viewer{UserID: 5, Role: task.RoleDesigner})
	view := m.View()

	assert.Contains(view, "[1] Tasks")
	assert.Contains(view, "status: in progress")
	assert.Contains(view, "Spring banner")
	assert.Contains(view, "0m30s left")
	assert.NotContains(view, "Reels script", "new task hidden by the in-progress default")
	assert.NotContains(view, "Weekly digest")
}

func TestTabSwitchIsPersisted(t *testing.T) {
	useASCIIRenderer(t)
	assert := assert.New(t)

	m, _, store := newTestModel(t, task.Viewer{UserID: 5, Role: task.RoleDesigner})
	m, _ = press(t, m, "tab")

	assert.Equal(task.TabRecurring, m.activeTab)
	assert.Equal(task.TabRecurring, board.LoadActiveTab(store))
	view := m.View()
	assert.Contains(view, "Weekly digest")
	assert.Contains(view, "weekly Mon,Wed at 10:00")
	assert.Contains(view, "active")

	m, _ = press(t, m, "1")
	assert.Equal(task.TabRegular, board.LoadActiveTab(store))
}

func TestStatusFilterCyclesAndPersists(t *testing.T) {
	assert := assert.New(t)

	m, _, store := newTestModel(t, task.Viewer{UserID: 5, Role: task.RoleDesigner})
	m, _ = press(t, m, "f")

	assert.Equal(task.StatusDone, m.filters[task.TabRegular].Status)
	assert.Equal(task.StatusDone, board.LoadFilter(store, task.TabRegular).Status)
	assert.Len(m.taskList.Items(), 0)

	m, _ = press(t, m, "x")
	assert.Equal(task.StatusInProgress, board.LoadFilter(store, task.TabRegular).Status)
	assert.Len(m.taskList.Items(), 1)
}

func TestTickReclassifiesOverdue(t *testing.T) {
	assert := assert.New(t)

	m, _, _ := newTestModel(t, task.Viewer{UserID: 5, Role: task.RoleDesigner})
	assert.Len(m.taskList.Items(), 1)

	updated, cmd := m.Update(tickMsg(boardNow.Add(time.Minute)))
	m = updated.(model)
	assert.NotNil(cmd, "tick re-arms itself")
	assert.Len(m.taskList.Items(), 0, "overdue task leaves the in-progress filter")

	m.filters[task.TabRegular] = task.Filter{Status: task.StatusOverdue}
	m.rebuildRows()
	assert.Len(m.taskList.Items(), 1)
	assert.Contains(formatTaskItem(m.taskList.Items()[0].(taskItem), 0), "[overdue]")
}

func TestForbiddenActionSkipsBackend(t *testing.T) {
	assert := assert.New(t)

	m, backend, _ := newTestModel(t, task.Viewer{UserID: 9, Role: task.RoleDigital})
	before := len(backend.Calls())

	m, cmd := press(t, m, "c")
	assert.Nil(cmd)
	assert.Equal(statusError, m.statusLevel)
	assert.True(strings.HasPrefix(m.status, "Not allowed"), m.status)
	assert.Len(backend.Calls(), before)
}

func TestCompleteRunsThroughBoard(t *testing.T) {
	assert := assert.New(t)

	m, backend, _ := newTestModel(t, task.Viewer{UserID: 5, Role: task.RoleDesigner})
	m, cmd := press(t, m, "c")
	m = run(t, m, cmd)

	assert.Equal(statusInfo, m.statusLevel, m.status)
	assert.Contains(backend.Calls(), "PATCH /tasks/1/status")
	done, err := m.board.Task(1)
	assert.Nil(err)
	assert.Equal(task.StatusDone, done.Status)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	assert := assert.New(t)

	m, backend, _ := newTestModel(t, task.Viewer{UserID: 5, Role: task.RoleDesigner})
	before := len(backend.Calls())

	m, cmd := press(t, m, "D")
	assert.Nil(cmd)
	assert.Equal(modalConfirmAction, m.modal.kind)

	m, cmd = press(t, m, "esc")
	assert.Nil(cmd)
	assert.Equal(modalNone, m.modal.kind)
	assert.Len(backend.Calls(), before)

	m, _ = press(t, m, "D")
	m, cmd = press(t, m, "y")
	m = run(t, m, cmd)
	assert.Contains(backend.Calls(), "DELETE /tasks/1")
	_, err := m.board.Task(1)
	assert.ErrorIs(err, task.ErrTaskNotFound)
}
