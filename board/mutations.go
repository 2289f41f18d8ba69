package board

import (
	"context"
	"fmt"

	"github.com/amonks/agency/task"
)

// authorize checks the action against the cached record.
func (b *Board) authorize(id int, action task.Action) (task.Task, error) {
	t, err := b.Task(id)
	if err != nil {
		return task.Task{}, err
	}
	if err := task.Authorize(b.viewer, t, action, b.now()); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Create validates and posts a new task authored by the viewer, then refreshes.
func (b *Board) Create(ctx context.Context, draft task.Draft) (*task.Task, error) {
	if b.viewer.UserID == 0 {
		return nil, fmt.Errorf("%w: not logged in", task.ErrForbidden)
	}
	draft.AuthorID = b.viewer.UserID
	if err := task.ValidateDraft(b.viewer, draft, b.Users()); err != nil {
		return nil, err
	}
	created, err := b.backend.CreateTask(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	b.Refresh(ctx)
	return created, nil
}

// Update replaces a task's fields with PUT, then refreshes. A new executor
// whose vocabulary lacks the task's type or format keeps the stale value; it
// is logged, not cleared.
func (b *Board) Update(ctx context.Context, updated task.Task) (*task.Task, error) {
	current, err := b.Task(updated.ID)
	if err != nil {
		return nil, err
	}
	if !task.CanEdit(b.viewer, current) {
		return nil, fmt.Errorf("%w: edit task %d", task.ErrForbidden, updated.ID)
	}
	if err := task.ValidateTitle(updated.Title); err != nil {
		return nil, err
	}
	updated.AuthorID = current.AuthorID
	if updated.IsRecurring && updated.Deadline != nil && !updated.Deadline.IsZero() {
		return nil, task.ErrRecurringDeadline
	}
	if updated.ExecutorID != current.ExecutorID {
		b.checkReassignment(updated)
	}

	replaced, err := b.backend.ReplaceTask(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", updated.ID, err)
	}
	b.Refresh(ctx)
	return replaced, nil
}

func (b *Board) checkReassignment(updated task.Task) {
	executor, ok := task.UserByID(b.Users())[updated.ExecutorID]
	if !ok {
		return
	}
	if err := task.ValidateClassification(executor.Role, updated.TaskType, updated.TaskFormat); err != nil {
		b.logger.Warn().
			Err(err).
			Int("task", updated.ID).
			Int("executor", executor.ID).
			Msg("reassigned task keeps type from previous executor's vocabulary")
	}
}

// Delete removes a task, then refreshes.
func (b *Board) Delete(ctx context.Context, id int) error {
	if _, err := b.authorize(id, task.ActionDelete); err != nil {
		return err
	}
	if err := b.backend.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	b.Refresh(ctx)
	return nil
}

// Complete marks a task done (pauses autosave on a template), then refreshes.
func (b *Board) Complete(ctx context.Context, id int) error {
	return b.setStatus(ctx, id, task.ActionComplete)
}

// Resume moves a done task back to in progress, then refreshes.
func (b *Board) Resume(ctx context.Context, id int) error {
	return b.setStatus(ctx, id, task.ActionResume)
}

func (b *Board) setStatus(ctx context.Context, id int, action task.Action) error {
	if _, err := b.authorize(id, action); err != nil {
		return err
	}
	if _, err := b.backend.SetTaskStatus(ctx, id, task.TargetStatus(action)); err != nil {
		return fmt.Errorf("%s task %d: %w", action, id, err)
	}
	b.Refresh(ctx)
	return nil
}

// StopRecurring turns a template into a one-shot task with a single partial
// update, then refreshes. A rejected update leaves the cache untouched.
func (b *Board) StopRecurring(ctx context.Context, id int) error {
	if _, err := b.authorize(id, task.ActionStopRecurring); err != nil {
		return err
	}
	if _, err := b.backend.PatchTask(ctx, id, task.StopRecurringPatch()); err != nil {
		return fmt.Errorf("stop recurring task %d: %w", id, err)
	}
	b.Refresh(ctx)
	return nil
}

// Accept moves a new task to in progress and patches the cached record.
func (b *Board) Accept(ctx context.Context, id int) (task.Task, error) {
	current, err := b.authorize(id, task.ActionAccept)
	if err != nil {
		return task.Task{}, err
	}
	returned, err := b.backend.AcceptTask(ctx, id)
	if err != nil {
		return task.Task{}, fmt.Errorf("accept task %d: %w", id, err)
	}
	updated := current
	if returned != nil {
		updated = *returned
	} else {
		updated.Status = task.StatusInProgress
		updated.AcceptedAt = task.NewTimestamp(b.now())
	}
	b.replace(updated)
	return updated, nil
}

// TogglePriority flips high_priority and patches the cached record.
func (b *Board) TogglePriority(ctx context.Context, id int) (task.Task, error) {
	current, err := b.authorize(id, task.ActionPriority)
	if err != nil {
		return task.Task{}, err
	}
	returned, err := b.backend.ToggleTaskPriority(ctx, id)
	if err != nil {
		return task.Task{}, fmt.Errorf("toggle priority of task %d: %w", id, err)
	}
	updated := current
	if returned != nil {
		updated = *returned
	} else {
		updated.HighPriority = !current.HighPriority
	}
	b.replace(updated)
	return updated, nil
}

// Apply runs action on the task with id.
func (b *Board) Apply(ctx context.Context, action task.Action, id int) error {
	var err error
	switch action {
	case task.ActionAccept:
		_, err = b.Accept(ctx, id)
	case task.ActionComplete:
		err = b.Complete(ctx, id)
	case task.ActionResume:
		err = b.Resume(ctx, id)
	case task.ActionDelete:
		err = b.Delete(ctx, id)
	case task.ActionPriority:
		_, err = b.TogglePriority(ctx, id)
	case task.ActionStopRecurring:
		err = b.StopRecurring(ctx, id)
	default:
		err = fmt.Errorf("%w: %q", task.ErrUnknownAction, action)
	}
	return err
}
