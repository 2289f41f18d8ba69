package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrForbidden is returned when the viewer may not perform an action on a task.
	ErrForbidden = errors.New("action not permitted for current user")

	// ErrInvalidTransition is returned when an action does not apply to the task's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownAction is returned when an action name is not recognized.
	ErrUnknownAction = errors.New("unknown action")
)

// Action is a user-triggerable operation on a task row.
type Action string

const (
	ActionAccept        Action = "accept"
	ActionComplete      Action = "complete"
	ActionResume        Action = "resume"
	ActionDelete        Action = "delete"
	ActionPriority      Action = "priority"
	ActionStopRecurring Action = "stop-recurring"
)

// AllActions returns every action in display order.
func AllActions() []Action {
	return []Action{ActionAccept, ActionComplete, ActionResume, ActionPriority, ActionStopRecurring, ActionDelete}
}

// ParseAction resolves an action name.
func ParseAction(value string) (Action, error) {
	normalized := Action(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-"))
	for _, action := range AllActions() {
		if normalized == action {
			return action, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, value)
}

// IsOverdue reports whether a regular task is overdue at now: either the
// backend already reports it, or it is in progress and its deadline has
// passed. Templates are never overdue.
func IsOverdue(t Task, now time.Time) bool {
	if t.IsTemplate() {
		return false
	}
	switch normalizeStatus(t.Status) {
	case StatusOverdue:
		return true
	case StatusInProgress:
		deadline := timeOf(t.Deadline)
		return !deadline.IsZero() && now.After(deadline)
	default:
		return false
	}
}

// EffectiveStatus returns the status a view should display and reason about at now.
func EffectiveStatus(t Task, now time.Time) Status {
	if IsOverdue(t, now) {
		return StatusOverdue
	}
	return normalizeStatus(t.Status)
}

// TargetStatus returns the status an action asks the backend for. It is
// empty for actions that do not change status.
func TargetStatus(action Action) Status {
	switch action {
	case ActionAccept, ActionResume:
		return StatusInProgress
	case ActionComplete:
		return StatusDone
	default:
		return ""
	}
}

// Authorize checks whether viewer may perform action on t at now. It returns
// ErrInvalidTransition when the action does not apply to the task's state and
// ErrForbidden when the viewer lacks the right to perform it.
func Authorize(viewer Viewer, t Task, action Action, now time.Time) error {
	if viewer.UserID == 0 {
		return fmt.Errorf("%w: not logged in", ErrForbidden)
	}
	if t.IsTemplate() {
		return authorizeTemplate(viewer, t, action)
	}

	status := EffectiveStatus(t, now)
	overdue := status == StatusOverdue

	switch action {
	case ActionAccept:
		if status != StatusNew {
			return transitionError(action, status)
		}
		if !viewer.IsExecutor(t) {
			return fmt.Errorf("%w: only the executor can accept task %d", ErrForbidden, t.ID)
		}
	case ActionComplete:
		if status != StatusInProgress && status != StatusOverdue {
			return transitionError(action, status)
		}
		if !overdue && !viewer.owns(t) {
			return fmt.Errorf("%w: complete task %d", ErrForbidden, t.ID)
		}
	case ActionResume:
		if status != StatusDone {
			return transitionError(action, status)
		}
		if !viewer.owns(t) {
			return fmt.Errorf("%w: resume task %d", ErrForbidden, t.ID)
		}
	case ActionDelete:
		if !overdue && !viewer.owns(t) {
			return fmt.Errorf("%w: delete task %d", ErrForbidden, t.ID)
		}
	case ActionPriority:
	case ActionStopRecurring:
		return fmt.Errorf("%w: task %d", ErrNotTemplate, t.ID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}

// authorizeTemplate applies the template overlay: done means autosave is
// paused, there is no accept step and no overdue escalation.
func authorizeTemplate(viewer Viewer, t Task, action Action) error {
	status := normalizeStatus(t.Status)

	switch action {
	case ActionAccept:
		return fmt.Errorf("%w: templates are not accepted", ErrInvalidTransition)
	case ActionComplete:
		if status != StatusNew && status != StatusInProgress {
			return transitionError(action, status)
		}
	case ActionResume:
		if status != StatusDone {
			return transitionError(action, status)
		}
	case ActionDelete, ActionStopRecurring:
	case ActionPriority:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if !viewer.owns(t) {
		return fmt.Errorf("%w: %s template %d", ErrForbidden, action, t.ID)
	}
	return nil
}

func transitionError(action Action, from Status) error {
	return fmt.Errorf("%w: cannot %s a task that is %s", ErrInvalidTransition, action, from)
}

// Actions returns the actions viewer may perform on t at now, in display order.
func Actions(viewer Viewer, t Task, now time.Time) []Action {
	var allowed []Action
	for _, action := range AllActions() {
		if Authorize(viewer, t, action, now) == nil {
			allowed = append(allowed, action)
		}
	}
	return allowed
}

// HasAction reports whether action is among actions.
func HasAction(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// ActionLabel returns the user-facing label for an action.
func ActionLabel(action Action, template bool) string {
	switch action {
	case ActionAccept:
		return "Accept"
	case ActionComplete:
		if template {
			return "Pause autosave"
		}
		return "Complete"
	case ActionResume:
		if template {
			return "Resume autosave"
		}
		return "Resume"
	case ActionDelete:
		return "Delete"
	case ActionPriority:
		return "Toggle priority"
	case ActionStopRecurring:
		return "Stop recurring"
	default:
		return string(action)
	}
}

// StatusLabel returns the user-facing label for a status. On templates done
// reads as paused.
func StatusLabel(status Status, template bool) string {
	switch status {
	case StatusNew:
		return "new"
	case StatusInProgress:
		if template {
			return "active"
		}
		return "in progress"
	case StatusDone:
		if template {
			return "paused"
		}
		return "done"
	case StatusOverdue:
		return "overdue"
	default:
		return string(status)
	}
}
