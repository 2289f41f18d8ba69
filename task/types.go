// Package task implements the task model of the agency dashboard: the
// lifecycle state machine, the role-scoped visibility policy and the pure
// filter/sort derivation used by every task view.
//
// Nothing in this package performs I/O. Tasks are fetched and mutated
// through the board package, which calls into the policy defined here
// before touching the backend.
//
// The public API mirrors what a task view needs:
//   - Authorize, Actions, EffectiveStatus for the lifecycle
//   - TaskTypesForRole, FormatsForRole, AssignableUsers, FilterOptionsFor for the policy
//   - Partition, Derive for building the visible list
package task

import "strings"

// Status represents the lifecycle state of a task.
type Status string

const (
	// StatusNew indicates the task was created but not yet accepted by its executor.
	StatusNew Status = "new"

	// StatusInProgress indicates the executor accepted the task.
	StatusInProgress Status = "in_progress"

	// StatusDone indicates the task is finished. On a template it means autosave is paused.
	StatusDone Status = "done"

	// StatusOverdue is computed by the backend for in-progress tasks past their deadline.
	// Clients never request it.
	StatusOverdue Status = "overdue"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusDone, StatusOverdue}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Requestable reports whether a client may ask the backend for this status.
func (s Status) Requestable() bool {
	return s == StatusNew || s == StatusInProgress || s == StatusDone
}

// Role is a user's role in the agency.
type Role string

const (
	RoleDesigner      Role = "designer"
	RoleSMMManager    Role = "smm_manager"
	RoleHeadSMM       Role = "head_smm"
	RoleDigital       Role = "digital"
	RoleAdmin         Role = "admin"
	RoleAdministrator Role = "administrator"

	// RoleInactive marks a soft-deleted user. Inactive users keep their
	// historical task references but are hidden from assignment pools.
	RoleInactive Role = "inactive"
)

// ValidRoles returns all valid role values.
func ValidRoles() []Role {
	return []Role{RoleDesigner, RoleSMMManager, RoleHeadSMM, RoleDigital, RoleAdmin, RoleAdministrator, RoleInactive}
}

// IsValid returns true if the role is a known valid value.
func (r Role) IsValid() bool {
	for _, valid := range ValidRoles() {
		if r == valid {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role has administrator rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleAdministrator
}

// FilterRoles returns the roles offered by the role filter, in display order.
func FilterRoles() []Role {
	return []Role{RoleDesigner, RoleSMMManager, RoleHeadSMM, RoleDigital, RoleAdmin}
}

// RecurrenceType is the cadence of a recurring task template.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

// ValidRecurrenceTypes returns all valid recurrence types.
func ValidRecurrenceTypes() []RecurrenceType {
	return []RecurrenceType{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly}
}

// IsValid returns true if the recurrence type is a known valid value.
func (r RecurrenceType) IsValid() bool {
	for _, valid := range ValidRecurrenceTypes() {
		if r == valid {
			return true
		}
	}
	return false
}

// Tab selects which classification of the task list a view shows.
type Tab string

const (
	// TabRegular shows one-shot tasks.
	TabRegular Tab = "regular"

	// TabRecurring shows recurring task templates.
	TabRecurring Tab = "recurring"
)

// IsValid returns true if the tab is a known value.
func (t Tab) IsValid() bool {
	return t == TabRegular || t == TabRecurring
}

// DateBucket restricts tasks by creation date.
type DateBucket string

const (
	DateAll   DateBucket = ""
	DateToday DateBucket = "today"
	DateWeek  DateBucket = "week"
	DateMonth DateBucket = "month"
)

// ValidDateBuckets returns all valid date buckets, including the empty "all" bucket.
func ValidDateBuckets() []DateBucket {
	return []DateBucket{DateAll, DateToday, DateWeek, DateMonth}
}

// IsValid returns true if the bucket is a known value.
func (d DateBucket) IsValid() bool {
	for _, valid := range ValidDateBuckets() {
		if d == valid {
			return true
		}
	}
	return false
}

// MaxTitleLength is the maximum number of characters in a task title.
const MaxTitleLength = 500

func normalizeStatus(status Status) Status {
	return Status(strings.ToLower(strings.TrimSpace(string(status))))
}

func normalizeRole(role Role) Role {
	return Role(strings.ToLower(strings.TrimSpace(string(role))))
}
