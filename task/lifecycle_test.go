package task

import (
	"errors"
	"testing"
	"time"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)
	past := mustTimestamp("2024-01-01T10:00")
	future := mustTimestamp("2024-01-03T10:00")

	tests := []struct {
		name string
		task Task
		want Status
	}{
		{"in progress before deadline", Task{Status: StatusInProgress, Deadline: future}, StatusInProgress},
		{"in progress past deadline", Task{Status: StatusInProgress, Deadline: past}, StatusOverdue},
		{"server reported overdue", Task{Status: StatusOverdue}, StatusOverdue},
		{"new past deadline stays new", Task{Status: StatusNew, Deadline: past}, StatusNew},
		{"done past deadline stays done", Task{Status: StatusDone, Deadline: past}, StatusDone},
		{"no deadline", Task{Status: StatusInProgress}, StatusInProgress},
		{"template past deadline stays in progress", Task{Status: StatusInProgress, IsRecurring: true, Deadline: past}, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveStatus(tt.task, now); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestActions_OverdueStrangerScenario(t *testing.T) {
	task := Task{
		ID:         1,
		Status:     StatusInProgress,
		Deadline:   mustTimestamp("2024-01-01T10:00"),
		ExecutorID: 5,
		AuthorID:   3,
	}
	viewer := Viewer{UserID: 9, Role: RoleDesigner}
	now := time.Date(2024, 1, 1, 10, 1, 0, 0, time.Local)

	actions := Actions(viewer, task, now)
	if !HasAction(actions, ActionDelete) {
		t.Errorf("expected delete to be offered, got %v", actions)
	}
	if !HasAction(actions, ActionComplete) {
		t.Errorf("expected complete to be offered, got %v", actions)
	}
	if HasAction(actions, ActionAccept) {
		t.Errorf("expected accept to be hidden, got %v", actions)
	}

	before := time.Date(2024, 1, 1, 9, 59, 0, 0, time.Local)
	if err := Authorize(viewer, task, ActionComplete, before); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected stranger to be forbidden before the deadline, got %v", err)
	}
	if err := Authorize(viewer, task, ActionDelete, before); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected stranger delete to be forbidden before the deadline, got %v", err)
	}
}

func TestAuthorize_Regular(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	executor := Viewer{UserID: 5, Role: RoleDesigner}
	author := Viewer{UserID: 3, Role: RoleSMMManager}
	admin := Viewer{UserID: 1, Role: RoleAdministrator}
	stranger := Viewer{UserID: 9, Role: RoleDigital}

	newTask := Task{ID: 1, Status: StatusNew, ExecutorID: 5, AuthorID: 3}
	working := Task{ID: 2, Status: StatusInProgress, ExecutorID: 5, AuthorID: 3}
	done := Task{ID: 3, Status: StatusDone, ExecutorID: 5, AuthorID: 3}
	overdue := Task{ID: 4, Status: StatusOverdue, ExecutorID: 5, AuthorID: 3}

	tests := []struct {
		name   string
		viewer Viewer
		task   Task
		action Action
		err    error
	}{
		{"executor accepts", executor, newTask, ActionAccept, nil},
		{"author cannot accept", author, newTask, ActionAccept, ErrForbidden},
		{"admin cannot accept", admin, newTask, ActionAccept, ErrForbidden},
		{"accept only from new", executor, working, ActionAccept, ErrInvalidTransition},
		{"stranger cannot accept overdue", stranger, overdue, ActionAccept, ErrInvalidTransition},
		{"executor completes", executor, working, ActionComplete, nil},
		{"author completes", author, working, ActionComplete, nil},
		{"admin completes", admin, working, ActionComplete, nil},
		{"stranger cannot complete", stranger, working, ActionComplete, ErrForbidden},
		{"stranger completes overdue", stranger, overdue, ActionComplete, nil},
		{"complete requires in progress", executor, newTask, ActionComplete, ErrInvalidTransition},
		{"executor resumes", executor, done, ActionResume, nil},
		{"stranger cannot resume", stranger, done, ActionResume, ErrForbidden},
		{"resume requires done", author, working, ActionResume, ErrInvalidTransition},
		{"author deletes", author, newTask, ActionDelete, nil},
		{"stranger cannot delete", stranger, done, ActionDelete, ErrForbidden},
		{"stranger deletes overdue", stranger, overdue, ActionDelete, nil},
		{"anyone toggles priority", stranger, done, ActionPriority, nil},
		{"logged out cannot toggle", Viewer{}, done, ActionPriority, ErrForbidden},
		{"stop recurring needs template", admin, working, ActionStopRecurring, ErrNotTemplate},
		{"unknown action", admin, working, Action("archive"), ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.viewer, tt.task, tt.action, now)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestAuthorize_Template(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	author := Viewer{UserID: 3, Role: RoleSMMManager}
	stranger := Viewer{UserID: 9, Role: RoleDigital}

	active := Task{ID: 1, IsRecurring: true, Status: StatusNew, ExecutorID: 5, AuthorID: 3}
	paused := Task{ID: 2, IsRecurring: true, Status: StatusDone, ExecutorID: 5, AuthorID: 3}
	stale := Task{ID: 3, IsRecurring: true, Status: StatusInProgress, ExecutorID: 5, AuthorID: 3, Deadline: mustTimestamp("2024-01-01T10:00")}

	tests := []struct {
		name   string
		viewer Viewer
		task   Task
		action Action
		err    error
	}{
		{"pause from new", author, active, ActionComplete, nil},
		{"pause from in progress", author, stale, ActionComplete, nil},
		{"no overdue escalation", stranger, stale, ActionComplete, ErrForbidden},
		{"no overdue delete escalation", stranger, stale, ActionDelete, ErrForbidden},
		{"templates are never accepted", Viewer{UserID: 5, Role: RoleDesigner}, active, ActionAccept, ErrInvalidTransition},
		{"resume autosave", author, paused, ActionResume, nil},
		{"resume requires paused", author, active, ActionResume, ErrInvalidTransition},
		{"stop recurring by author", author, active, ActionStopRecurring, nil},
		{"stop recurring by stranger", stranger, active, ActionStopRecurring, ErrForbidden},
		{"priority for anyone", stranger, paused, ActionPriority, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.viewer, tt.task, tt.action, now)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestActionLabel(t *testing.T) {
	if got := ActionLabel(ActionComplete, true); got != "Pause autosave" {
		t.Fatalf("unexpected template complete label %q", got)
	}
	if got := ActionLabel(ActionResume, true); got != "Resume autosave" {
		t.Fatalf("unexpected template resume label %q", got)
	}
	if got := ActionLabel(ActionComplete, false); got != "Complete" {
		t.Fatalf("unexpected complete label %q", got)
	}
	if got := StatusLabel(StatusDone, true); got != "paused" {
		t.Fatalf("unexpected template done label %q", got)
	}
}

func TestParseAction(t *testing.T) {
	got, err := ParseAction("stop_recurring")
	if err != nil || got != ActionStopRecurring {
		t.Fatalf("expected stop-recurring, got %q, %v", got, err)
	}
	if _, err := ParseAction("archive"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestTimeLeft(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	task := Task{Status: StatusInProgress, Deadline: mustTimestamp("2024-01-01T10:30")}
	left, ok := TimeLeft(task, now)
	if !ok || left != 90*time.Minute {
		t.Fatalf("expected 1h30m left, got %s/%t", left, ok)
	}

	task.IsRecurring = true
	if _, ok := TimeLeft(task, now); ok {
		t.Fatal("templates should not report a countdown")
	}
}
