package task

// Viewer identifies the authenticated user looking at tasks.
type Viewer struct {
	UserID int
	Role   Role
}

// IsAdmin reports whether the viewer has administrator rights.
func (v Viewer) IsAdmin() bool {
	return normalizeRole(v.Role).IsAdmin()
}

// IsExecutor reports whether the viewer is the task's executor.
func (v Viewer) IsExecutor(t Task) bool {
	return t.ExecutorID != 0 && t.ExecutorID == v.UserID
}

// IsAuthor reports whether the viewer created the task.
func (v Viewer) IsAuthor(t Task) bool {
	return t.AuthorID != 0 && t.AuthorID == v.UserID
}

// owns reports whether the viewer is the executor, the author or an admin.
func (v Viewer) owns(t Task) bool {
	return v.IsExecutor(t) || v.IsAuthor(t) || v.IsAdmin()
}

// AssignableUsers returns the users the viewer may pick as an executor, in
// input order. Inactive users are never returned.
func AssignableUsers(viewer Viewer, users []User) []User {
	assignable := make([]User, 0, len(users))
	for _, u := range users {
		if canAssign(viewer.Role, u) {
			assignable = append(assignable, u)
		}
	}
	return assignable
}

func canAssign(viewerRole Role, candidate User) bool {
	if !candidate.Active() {
		return false
	}
	role := normalizeRole(candidate.Role)
	switch normalizeRole(viewerRole) {
	case RoleAdmin, RoleAdministrator:
		return true
	case RoleSMMManager:
		return role == RoleDesigner || role == RoleSMMManager
	case RoleDesigner:
		return role == RoleDesigner
	default:
		return false
	}
}

// FilterOptions describes which filter dimensions the filter bar exposes.
type FilterOptions struct {
	// Roles lists the executor roles offered by the role filter. Empty when
	// the role filter is hidden.
	Roles []Role

	// UserRoles restricts which users the user filter offers. Nil means every user.
	UserRoles []Role

	Project bool
	Date    bool
	Status  bool
}

// ShowRoleFilter reports whether the role filter is exposed at all.
func (o FilterOptions) ShowRoleFilter() bool {
	return len(o.Roles) > 0
}

// FilterOptionsFor returns the filter dimensions for the viewer. Designers
// only ever see their own domain: no role filter and designer-only users.
func FilterOptionsFor(viewer Viewer) FilterOptions {
	opts := FilterOptions{Project: true, Date: true, Status: true}
	if normalizeRole(viewer.Role) == RoleDesigner {
		opts.UserRoles = []Role{RoleDesigner}
		return opts
	}
	opts.Roles = FilterRoles()
	return opts
}

// FilterUsers returns the users offered by the user filter for the given options.
func FilterUsers(opts FilterOptions, users []User) []User {
	if opts.UserRoles == nil {
		return append([]User(nil), users...)
	}
	allowed := make(map[Role]bool, len(opts.UserRoles))
	for _, role := range opts.UserRoles {
		allowed[role] = true
	}
	filtered := make([]User, 0, len(users))
	for _, u := range users {
		if allowed[normalizeRole(u.Role)] {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// CanEdit reports whether the viewer may change a task's fields: its
// executor, its author or an admin.
func CanEdit(viewer Viewer, t Task) bool {
	return viewer.UserID != 0 && viewer.owns(t)
}
