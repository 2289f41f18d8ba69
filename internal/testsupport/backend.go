package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amonks/agency/task"
)

// Seed is the initial content of a FakeBackend.
type Seed struct {
	Token    string         `json:"token"`
	Users    []task.User    `json:"users"`
	Projects []task.Project `json:"projects"`
	Tasks    []task.Task    `json:"tasks"`
}

// LoadSeed reads a Seed from a JSON file.
func LoadSeed(path string) (Seed, error) {
	var seed Seed
	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read seed: %w", err)
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("parse seed: %w", err)
	}
	return seed, nil
}

// FakeBackend is an in-process stand-in for the agency REST backend. It
// keeps tasks in memory, reports in-progress tasks past their deadline as
// overdue and counts resumes.
type FakeBackend struct {
	mu       sync.Mutex
	token    string
	users    []task.User
	projects []task.Project
	tasks    []task.Task
	nextID   int
	calls    []string

	// Now is the backend clock.
	Now func() time.Time

	// EmptyLifecycleBodies makes accept and priority answer 204 with no body.
	EmptyLifecycleBodies bool

	// RejectPatch makes PATCH /tasks/{id} answer 422.
	RejectPatch bool
}

// NewFakeBackend returns a backend holding seed.
func NewFakeBackend(seed Seed) *FakeBackend {
	b := &FakeBackend{
		token:    seed.Token,
		users:    append([]task.User(nil), seed.Users...),
		projects: append([]task.Project(nil), seed.Projects...),
		tasks:    append([]task.Task(nil), seed.Tasks...),
		Now:      time.Now,
	}
	for _, t := range b.tasks {
		if t.ID >= b.nextID {
			b.nextID = t.ID
		}
	}
	return b
}

// Start serves the backend until the test ends.
func (b *FakeBackend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(b.Handler())
	t.Cleanup(server.Close)
	return server
}

// Calls returns "METHOD path" for every request received so far.
func (b *FakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// Tasks returns the stored tasks as the backend would list them.
func (b *FakeBackend) Tasks() []task.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listLocked()
}

// Handler returns the HTTP handler of the backend.
func (b *FakeBackend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/{$}", b.listTasks)
	mux.HandleFunc("POST /tasks/{$}", b.createTask)
	mux.HandleFunc("PUT /tasks/{id}", b.replaceTask)
	mux.HandleFunc("PATCH /tasks/{id}", b.patchTask)
	mux.HandleFunc("DELETE /tasks/{id}", b.deleteTask)
	mux.HandleFunc("PATCH /tasks/{id}/accept", b.acceptTask)
	mux.HandleFunc("PATCH /tasks/{id}/status", b.setStatus)
	mux.HandleFunc("PATCH /tasks/{id}/priority", b.togglePriority)
	mux.HandleFunc("GET /users/{$}", b.listUsers)
	mux.HandleFunc("GET /projects/{$}", b.listProjects)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()

		if b.token != "" && r.Header.Get("Authorization") != "Bearer "+b.token {
			writeError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) listLocked() []task.Task {
	now := b.Now()
	tasks := make([]task.Task, len(b.tasks))
	for i, t := range b.tasks {
		if !t.IsRecurring && t.Status == task.StatusInProgress && t.Deadline != nil && now.After(t.Deadline.Time) {
			t.Status = task.StatusOverdue
		}
		tasks[i] = t
	}
	return tasks
}

func (b *FakeBackend) listTasks(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.listLocked())
}

func (b *FakeBackend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.users)
}

func (b *FakeBackend) listProjects(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.projects)
}

func (b *FakeBackend) createTask(w http.ResponseWriter, r *http.Request) {
	var draft task.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if strings.TrimSpace(draft.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	created := task.Task{
		ID:             b.nextID,
		Title:          strings.TrimSpace(draft.Title),
		Description:    draft.Description,
		Project:        draft.Project,
		TaskType:       draft.TaskType,
		TaskFormat:     draft.TaskFormat,
		AuthorID:       draft.AuthorID,
		ExecutorID:     draft.ExecutorID,
		CreatedAt:      task.NewTimestamp(b.Now()),
		Deadline:       draft.Deadline,
		Status:         task.StatusNew,
		HighPriority:   draft.HighPriority,
		IsRecurring:    draft.IsRecurring,
		RecurrenceType: draft.RecurrenceType,
		RecurrenceTime: draft.RecurrenceTime,
		RecurrenceDays: draft.RecurrenceDays,
	}
	b.tasks = append(b.tasks, created)
	writeJSON(w, http.StatusCreated, created)
}

func (b *FakeBackend) replaceTask(w http.ResponseWriter, r *http.Request) {
	var replacement task.Task
	if err := json.NewDecoder(r.Body).Decode(&replacement); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.update(w, r, func(t *task.Task) error {
		id := t.ID
		*t = replacement
		t.ID = id
		return nil
	})
}

func (b *FakeBackend) patchTask(w http.ResponseWriter, r *http.Request) {
	if b.RejectPatch {
		writeError(w, http.StatusUnprocessableEntity, "partial update not supported")
		return
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.update(w, r, func(t *task.Task) error {
		current, err := json.Marshal(t)
		if err != nil {
			return err
		}
		var merged map[string]json.RawMessage
		if err := json.Unmarshal(current, &merged); err != nil {
			return err
		}
		for key, value := range fields {
			merged[key] = value
		}
		data, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		var patched task.Task
		if err := json.Unmarshal(data, &patched); err != nil {
			return err
		}
		patched.ID = t.ID
		*t = patched
		return nil
	})
}

func (b *FakeBackend) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (b *FakeBackend) acceptTask(w http.ResponseWriter, r *http.Request) {
	b.lifecycle(w, r, func(t *task.Task) error {
		if t.Status != task.StatusNew {
			return fmt.Errorf("task is %s", t.Status)
		}
		t.Status = task.StatusInProgress
		t.AcceptedAt = task.NewTimestamp(b.Now())
		return nil
	})
}

func (b *FakeBackend) setStatus(w http.ResponseWriter, r *http.Request) {
	status := task.Status(r.URL.Query().Get("status"))
	if !status.Requestable() {
		writeError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	}
	b.update(w, r, func(t *task.Task) error {
		if t.Status == task.StatusDone && status == task.StatusInProgress {
			t.ResumeCount++
		}
		if status == task.StatusDone {
			t.FinishedAt = task.NewTimestamp(b.Now())
		} else {
			t.FinishedAt = nil
		}
		t.Status = status
		return nil
	})
}

func (b *FakeBackend) togglePriority(w http.ResponseWriter, r *http.Request) {
	b.lifecycle(w, r, func(t *task.Task) error {
		t.HighPriority = !t.HighPriority
		return nil
	})
}

// lifecycle applies fn and honours EmptyLifecycleBodies.
func (b *FakeBackend) lifecycle(w http.ResponseWriter, r *http.Request, fn func(*task.Task) error) {
	if !b.EmptyLifecycleBodies {
		b.update(w, r, fn)
		return
	}
	recorder := httptest.NewRecorder()
	b.update(recorder, r, fn)
	if recorder.Code != http.StatusOK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(recorder.Code)
		w.Write(recorder.Body.Bytes())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) update(w http.ResponseWriter, r *http.Request, fn func(*task.Task) error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID != id {
			continue
		}
		if err := fn(&b.tasks[i]); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, b.tasks[i])
		return
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
