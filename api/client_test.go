package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amonks/agency/api"
	"github.com/amonks/agency/internal/testsupport"
	"github.com/amonks/agency/task"
	"github.com/stretchr/testify/assert"
)

func seed() testsupport.Seed {
	return testsupport.Seed{
		Token: "secret",
		Users: []task.User{
			{ID: 3, Name: "Sasha", Role: task.RoleSMMManager},
			{ID: 5, Name: "Dima", Role: task.RoleDesigner},
		},
		Projects: []task.Project{{ID: 1, Name: "Cafe"}},
		Tasks: []task.Task{
			{ID: 1, Title: "Banner", AuthorID: 3, ExecutorID: 5, Status: task.StatusNew},
			{ID: 2, Title: "Reels", AuthorID: 3, ExecutorID: 5, Status: task.StatusDone},
		},
	}
}

func newClient(t *testing.T, backend *testsupport.FakeBackend, opts ...api.Option) *api.Client {
	t.Helper()
	server := backend.Start(t)
	opts = append([]api.Option{api.WithToken(func() string { return "secret" })}, opts...)
	return api.NewClient(server.URL, opts...)
}

func TestClientListsWithBearerToken(t *testing.T) {
	assert := assert.New(t)
	backend := testsupport.NewFakeBackend(seed())
	client := newClient(t, backend)
	ctx := context.Background()

	tasks, err := client.ListTasks(ctx)
	assert.Nil(err)
	assert.Len(tasks, 2)

	users, err := client.ListUsers(ctx)
	assert.Nil(err)
	assert.Equal("Dima", users[1].Name)

	projects, err := client.ListProjects(ctx)
	assert.Nil(err)
	assert.Equal([]task.Project{{ID: 1, Name: "Cafe"}}, projects)

	assert.Equal([]string{"GET /tasks/", "GET /users/", "GET /projects/"}, backend.Calls())
}

func TestClientUnauthorizedRunsHook(t *testing.T) {
	assert := assert.New(t)
	backend := testsupport.NewFakeBackend(seed())
	server := backend.Start(t)

	hooked := 0
	client := api.NewClient(server.URL,
		api.WithToken(func() string { return "stale" }),
		api.WithUnauthorizedHook(func() { hooked++ }),
	)

	_, err := client.ListTasks(context.Background())
	assert.ErrorIs(err, api.ErrUnauthorized)
	assert.Equal(1, hooked)
}

func TestClientLifecycleEndpoints(t *testing.T) {
	assert := assert.New(t)
	backend := testsupport.NewFakeBackend(seed())
	client := newClient(t, backend)
	ctx := context.Background()

	accepted, err := client.AcceptTask(ctx, 1)
	assert.Nil(err)
	assert.Equal(task.StatusInProgress, accepted.Status)
	assert.NotNil(accepted.AcceptedAt)

	resumed, err := client.SetTaskStatus(ctx, 2, task.StatusInProgress)
	assert.Nil(err)
	assert.Equal(1, resumed.ResumeCount)

	toggled, err := client.ToggleTaskPriority(ctx, 1)
	assert.Nil(err)
	assert.True(toggled.HighPriority)

	_, err = client.SetTaskStatus(ctx, 1, task.StatusOverdue)
	assert.ErrorIs(err, task.ErrInvalidStatus)

	assert.Equal([]string{
		"PATCH /tasks/1/accept",
		"PATCH /tasks/2/status",
		"PATCH /tasks/1/priority",
	}, backend.Calls())
}

func TestClientEmptyBodyDecodesToNil(t *testing.T) {
	assert := assert.New(t)
	backend := testsupport.NewFakeBackend(seed())
	backend.EmptyLifecycleBodies = true
	client := newClient(t, backend)

	toggled, err := client.ToggleTaskPriority(context.Background(), 1)
	assert.Nil(err)
	assert.Nil(toggled)
}

func TestClientCreatePatchDelete(t *testing.T) {
	assert := assert.New(t)
	backend := testsupport.NewFakeBackend(seed())
	client := newClient(t, backend)
	ctx := context.Background()

	created, err := client.CreateTask(ctx, task.Draft{
		Title: "Weekly report", AuthorID: 3, ExecutorID: 3,
		IsRecurring: true, RecurrenceType: task.RecurrenceWeekly, RecurrenceTime: "10:00", RecurrenceDays: "1",
	})
	assert.Nil(err)
	assert.Equal(3, created.ID)
	assert.True(created.IsRecurring)

	patched, err := client.PatchTask(ctx, created.ID, task.StopRecurringPatch())
	assert.Nil(err)
	assert.False(patched.IsRecurring)
	assert.Equal(task.RecurrenceType(""), patched.RecurrenceType)
	assert.Equal("", patched.RecurrenceDays)

	patched.Title = "Monthly report"
	replaced, err := client.ReplaceTask(ctx, *patched)
	assert.Nil(err)
	assert.Equal("Monthly report", replaced.Title)

	assert.Nil(client.DeleteTask(ctx, created.ID))
	err = client.DeleteTask(ctx, created.ID)

	var statusErr *api.StatusError
	assert.True(errors.As(err, &statusErr))
	assert.Equal(http.StatusNotFound, statusErr.Code)
	assert.Equal("Task not found", statusErr.Message)
}

func TestClientValidationDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","title"],"msg":"field required"},{"msg":"bad deadline"}]}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	_, err := client.CreateTask(context.Background(), task.Draft{})

	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	assert.Equal(t, "field required; bad deadline", statusErr.Message)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := api.NewClient(server.URL, api.WithTimeout(50*time.Millisecond))
	_, err := client.ListUsers(context.Background())
	assert.NotNil(t, err)
}

func TestNewClientAddsScheme(t *testing.T) {
	client := api.NewClient("localhost:8000/")
	assert.Equal(t, "http://localhost:8000", client.BaseURL())
}
