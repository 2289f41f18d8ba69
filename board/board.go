// Package board is the client-side task collection cache.
//
// A Board holds the task, user and project lists fetched from the backend.
// Loads never fail: a failed fetch is logged and leaves an empty list.
// Mutations authorize through the task policy first, then call the backend
// and re-fetch the task list, except accept and priority toggles, which
// patch the affected record in place.
package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/amonks/agency/task"
)

// Backend is the REST surface the board needs.
type Backend interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	ListUsers(ctx context.Context) ([]task.User, error)
	ListProjects(ctx context.Context) ([]task.Project, error)
	CreateTask(ctx context.Context, draft task.Draft) (*task.Task, error)
	ReplaceTask(ctx context.Context, t task.Task) (*task.Task, error)
	PatchTask(ctx context.Context, id int, fields map[string]any) (*task.Task, error)
	DeleteTask(ctx context.Context, id int) error
	AcceptTask(ctx context.Context, id int) (*task.Task, error)
	SetTaskStatus(ctx context.Context, id int, status task.Status) (*task.Task, error)
	ToggleTaskPriority(ctx context.Context, id int) (*task.Task, error)
}

// Board caches the backend's lists for one viewer. It is safe for
// concurrent use.
type Board struct {
	backend Backend
	viewer  task.Viewer
	logger  zerolog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	tasks    []task.Task
	users    []task.User
	projects []task.Project
}

// Option configures a Board.
type Option func(*Board)

// WithClock replaces time.Now for authorization and local patches.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithLogger sets the board logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// New returns an empty board. Call Load to fill it.
func New(backend Backend, viewer task.Viewer, opts ...Option) *Board {
	b := &Board{
		backend:  backend,
		viewer:   viewer,
		logger:   zerolog.Nop(),
		now:      time.Now,
		tasks:    []task.Task{},
		users:    []task.User{},
		projects: []task.Project{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With().Str("component", "board").Logger()
	return b
}

// Viewer returns the identity the board authorizes as.
func (b *Board) Viewer() task.Viewer {
	return b.viewer
}

// Now returns the board clock's current time.
func (b *Board) Now() time.Time {
	return b.now()
}

// Load fetches tasks, users and projects.
func (b *Board) Load(ctx context.Context) {
	var wg sync.WaitGroup
	var tasks []task.Task
	var users []task.User
	var projects []task.Project

	wg.Add(3)
	go func() {
		defer wg.Done()
		tasks = fetchList(b.logger, "tasks", func() ([]task.Task, error) { return b.backend.ListTasks(ctx) })
	}()
	go func() {
		defer wg.Done()
		users = fetchList(b.logger, "users", func() ([]task.User, error) { return b.backend.ListUsers(ctx) })
	}()
	go func() {
		defer wg.Done()
		projects = fetchList(b.logger, "projects", func() ([]task.Project, error) { return b.backend.ListProjects(ctx) })
	}()
	wg.Wait()

	b.mu.Lock()
	b.tasks, b.users, b.projects = tasks, users, projects
	b.mu.Unlock()
}

// Refresh re-fetches the task list only.
func (b *Board) Refresh(ctx context.Context) {
	tasks := fetchList(b.logger, "tasks", func() ([]task.Task, error) { return b.backend.ListTasks(ctx) })
	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()
}

// fetchList runs fetch and degrades any failure to an empty, non-nil slice.
func fetchList[T any](logger zerolog.Logger, name string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		logger.Warn().Err(err).Str("list", name).Msg("fetch failed, showing empty list")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Tasks returns a copy of the cached tasks.
func (b *Board) Tasks() []task.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]task.Task{}, b.tasks...)
}

// Users returns a copy of the cached users.
func (b *Board) Users() []task.User {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]task.User{}, b.users...)
}

// Projects returns a copy of the cached projects.
func (b *Board) Projects() []task.Project {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]task.Project{}, b.projects...)
}

// Task returns the cached task with id.
func (b *Board) Task(id int) (task.Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := task.FindTask(b.tasks, id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %d", task.ErrTaskNotFound, id)
	}
	return t, nil
}

// Rows derives the visible rows of tab at now.
func (b *Board) Rows(tab task.Tab, filter task.Filter, now time.Time) []task.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return task.Derive(b.tasks, b.users, tab, filter, now)
}

// replace swaps the cached record with the same ID.
func (b *Board) replace(updated task.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == updated.ID {
			b.tasks[i] = updated
			return
		}
	}
}

// Tick emits the current time every interval until ctx is done. Ticks are
// dropped while the receiver is busy, so they never pile up.
func Tick(ctx context.Context, interval time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case ch <- now:
				default:
				}
			}
		}
	}()
	return ch
}
