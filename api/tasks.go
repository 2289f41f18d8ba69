package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amonks/agency/task"
)

// ListTasks returns every task visible to the token.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	tasks := []task.Task{}
	if _, err := c.do(ctx, http.MethodGet, "/tasks/", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]task.User, error) {
	users := []task.User{}
	if _, err := c.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []task.User{}
	}
	return users, nil
}

// ListProjects returns every project.
func (c *Client) ListProjects(ctx context.Context) ([]task.Project, error) {
	projects := []task.Project{}
	if _, err := c.do(ctx, http.MethodGet, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []task.Project{}
	}
	return projects, nil
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, draft task.Draft) (*task.Task, error) {
	return c.taskCall(ctx, http.MethodPost, "/tasks/", draft)
}

// ReplaceTask sends the full record with PUT.
func (c *Client) ReplaceTask(ctx context.Context, t task.Task) (*task.Task, error) {
	return c.taskCall(ctx, http.MethodPut, taskPath(t.ID, ""), t)
}

// PatchTask sends a partial update.
func (c *Client) PatchTask(ctx context.Context, id int, fields map[string]any) (*task.Task, error) {
	return c.taskCall(ctx, http.MethodPatch, taskPath(id, ""), fields)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, taskPath(id, ""), nil, nil)
	return err
}

// AcceptTask moves a new task to in_progress.
func (c *Client) AcceptTask(ctx context.Context, id int) (*task.Task, error) {
	return c.taskCall(ctx, http.MethodPatch, taskPath(id, "/accept"), nil)
}

// SetTaskStatus requests a status change. Only requestable statuses are sent.
func (c *Client) SetTaskStatus(ctx context.Context, id int, status task.Status) (*task.Task, error) {
	if !status.Requestable() {
		return nil, fmt.Errorf("%w: %q cannot be requested", task.ErrInvalidStatus, status)
	}
	query := url.Values{"status": []string{string(status)}}
	return c.taskCall(ctx, http.MethodPatch, taskPath(id, "/status")+"?"+query.Encode(), nil)
}

// ToggleTaskPriority flips high_priority.
func (c *Client) ToggleTaskPriority(ctx context.Context, id int) (*task.Task, error) {
	return c.taskCall(ctx, http.MethodPatch, taskPath(id, "/priority"), nil)
}

// taskCall decodes a single task response. An empty body yields nil.
func (c *Client) taskCall(ctx context.Context, method, path string, payload any) (*task.Task, error) {
	var t task.Task
	ok, err := c.do(ctx, method, path, payload, &t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func taskPath(id int, suffix string) string {
	return fmt.Sprintf("/tasks/%d%s", id, suffix)
}
