package task

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidRole is returned when an unknown role is provided.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTab is returned when an unknown tab is provided.
	ErrInvalidTab = errors.New("invalid tab")

	// ErrInvalidDateBucket is returned when an unknown date bucket is provided.
	ErrInvalidDateBucket = errors.New("invalid date filter")

	// ErrInvalidTimestamp is returned when a time value cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidTaskType is returned when a task type is outside the executor's vocabulary.
	ErrInvalidTaskType = errors.New("task type not available for executor role")

	// ErrInvalidTaskFormat is returned when a format is set for a non-designer or is unknown.
	ErrInvalidTaskFormat = errors.New("task format not available for executor role")

	// ErrInvalidRecurrence is returned when recurrence fields are inconsistent.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrRecurringDeadline is returned when a recurring template is given a deadline.
	ErrRecurringDeadline = errors.New("recurring task cannot have a deadline")

	// ErrExecutorNotAssignable is returned when the viewer may not assign the chosen executor.
	ErrExecutorNotAssignable = errors.New("executor not assignable by current user")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotTemplate is returned when a template-only action targets a regular task.
	ErrNotTemplate = errors.New("task is not recurring")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d characters", ErrTitleTooLong, n, MaxTitleLength)
	}
	return nil
}

// ParseStatus normalizes and validates a status string. The empty string is
// returned unchanged and means "all statuses" in filters.
func ParseStatus(value string) (Status, error) {
	status := normalizeStatus(Status(value))
	if status == "" {
		return "", nil
	}
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return status, nil
}

// ParseRole normalizes and validates a role string. The empty string is
// returned unchanged and means "all roles" in filters.
func ParseRole(value string) (Role, error) {
	role := normalizeRole(Role(value))
	if role == "" {
		return "", nil
	}
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, value)
	}
	return role, nil
}

// ParseTab validates a tab name.
func ParseTab(value string) (Tab, error) {
	tab := Tab(strings.ToLower(strings.TrimSpace(value)))
	if !tab.IsValid() {
		return "", fmt.Errorf("%w: %q (expected regular or recurring)", ErrInvalidTab, value)
	}
	return tab, nil
}

// ParseDateBucket validates a date bucket name. "all" is accepted as an alias for the empty bucket.
func ParseDateBucket(value string) (DateBucket, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "all" {
		normalized = ""
	}
	bucket := DateBucket(normalized)
	if !bucket.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateBucket, value)
	}
	return bucket, nil
}

// ValidateClassification checks task type and format against the executor's role.
// An empty type or format is always accepted.
func ValidateClassification(executorRole Role, taskType, taskFormat string) error {
	if taskType != "" && !containsString(TaskTypesForRole(executorRole), taskType) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidTaskType, taskType, executorRole)
	}
	if taskFormat != "" && !containsString(FormatsForRole(executorRole), taskFormat) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidTaskFormat, taskFormat, executorRole)
	}
	return nil
}

// ValidateDraft checks a draft before it is sent to the backend. users is
// the known user list, used to resolve the executor's role and to check that
// the author may assign them.
func ValidateDraft(viewer Viewer, draft Draft, users []User) error {
	if err := ValidateTitle(draft.Title); err != nil {
		return err
	}

	executorRole := Role("")
	if draft.ExecutorID != 0 {
		executor, ok := UserByID(users)[draft.ExecutorID]
		if !ok {
			return fmt.Errorf("%w: unknown user %d", ErrExecutorNotAssignable, draft.ExecutorID)
		}
		if draft.ExecutorID != viewer.UserID && !canAssign(viewer.Role, executor) {
			return fmt.Errorf("%w: %s (%s)", ErrExecutorNotAssignable, executor.Name, executor.Role)
		}
		executorRole = executor.Role
	} else if draft.TaskType != "" || draft.TaskFormat != "" {
		executorRole = viewer.Role
	}

	if err := ValidateClassification(executorRole, draft.TaskType, draft.TaskFormat); err != nil {
		return err
	}

	if draft.IsRecurring {
		if draft.Deadline != nil && !draft.Deadline.IsZero() {
			return ErrRecurringDeadline
		}
		if err := ValidateRecurrence(draft.RecurrenceType, draft.RecurrenceTime, draft.RecurrenceDays); err != nil {
			return err
		}
	} else if draft.RecurrenceType != "" || draft.RecurrenceTime != "" || draft.RecurrenceDays != "" {
		return fmt.Errorf("%w: recurrence fields set on a one-shot task", ErrInvalidRecurrence)
	}

	return nil
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
