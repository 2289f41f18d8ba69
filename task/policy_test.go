package task

import (
	"errors"
	"testing"
)

func sampleUsers() []User {
	return []User{
		{ID: 1, Name: "Ann", Role: RoleAdmin},
		{ID: 2, Name: "Dima", Role: RoleDesigner},
		{ID: 3, Name: "Sasha", Role: RoleSMMManager},
		{ID: 4, Name: "Katya", Role: RoleHeadSMM},
		{ID: 5, Name: "Oleg", Role: RoleDigital},
		{ID: 6, Name: "Gone", Role: RoleInactive},
		{ID: 7, Name: "Vera", Role: RoleDesigner},
		{ID: 8, Name: "Boss", Role: RoleAdministrator},
	}
}

func userIDs(users []User) []int {
	ids := make([]int, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTaskTypesForRole(t *testing.T) {
	tests := []struct {
		role  Role
		count int
		first string
	}{
		{RoleDesigner, 5, "Motion"},
		{RoleDigital, 10, "Таргетированная реклама"},
		{RoleAdmin, 11, "Закупка"},
		{RoleAdministrator, 11, "Закупка"},
		{RoleSMMManager, 11, "Пост"},
		{RoleHeadSMM, 11, "Пост"},
		{Role(""), 11, "Пост"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			types := TaskTypesForRole(tt.role)
			if len(types) != tt.count {
				t.Fatalf("expected %d types, got %d: %v", tt.count, len(types), types)
			}
			if types[0] != tt.first {
				t.Fatalf("expected first type %q, got %q", tt.first, types[0])
			}
		})
	}
}

func TestTaskTypesForRole_DesignerNeverSeesOtherVocabularies(t *testing.T) {
	designer := TaskTypesForRole(RoleDesigner)
	foreign := map[string]bool{}
	for _, typ := range append(TaskTypesForRole(RoleDigital), TaskTypesForRole(RoleAdmin)...) {
		if typ != "Другое" {
			foreign[typ] = true
		}
	}
	for _, typ := range designer {
		if foreign[typ] {
			t.Fatalf("designer vocabulary leaked %q", typ)
		}
	}
}

func TestTaskTypesForRole_ReturnsCopy(t *testing.T) {
	types := TaskTypesForRole(RoleDesigner)
	types[0] = "mutated"
	if TaskTypesForRole(RoleDesigner)[0] != "Motion" {
		t.Fatal("vocabulary should not be mutable through the returned slice")
	}
}

func TestFormatsForRole(t *testing.T) {
	if got := FormatsForRole(RoleDesigner); len(got) != 4 || got[2] != "9:16" {
		t.Fatalf("unexpected designer formats %v", got)
	}
	for _, role := range []Role{RoleDigital, RoleAdmin, RoleSMMManager} {
		if got := FormatsForRole(role); len(got) != 0 {
			t.Fatalf("expected no formats for %s, got %v", role, got)
		}
	}
}

func TestAssignableUsers(t *testing.T) {
	users := sampleUsers()
	tests := []struct {
		role Role
		want []int
	}{
		{RoleAdmin, []int{1, 2, 3, 4, 5, 7, 8}},
		{RoleAdministrator, []int{1, 2, 3, 4, 5, 7, 8}},
		{RoleSMMManager, []int{2, 3, 7}},
		{RoleDesigner, []int{2, 7}},
		{RoleHeadSMM, []int{}},
		{RoleDigital, []int{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got := userIDs(AssignableUsers(Viewer{UserID: 99, Role: tt.role}, users))
			if !equalInts(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterOptionsFor(t *testing.T) {
	designer := FilterOptionsFor(Viewer{UserID: 2, Role: RoleDesigner})
	if designer.ShowRoleFilter() {
		t.Fatal("designers should never see the role filter")
	}
	if got := userIDs(FilterUsers(designer, sampleUsers())); !equalInts(got, []int{2, 7}) {
		t.Fatalf("expected designer user filter to list designers, got %v", got)
	}

	admin := FilterOptionsFor(Viewer{UserID: 1, Role: RoleAdmin})
	if !admin.ShowRoleFilter() {
		t.Fatal("admins should see the role filter")
	}
	if got := FilterUsers(admin, sampleUsers()); len(got) != len(sampleUsers()) {
		t.Fatalf("expected every user in admin user filter, got %d", len(got))
	}
}

func TestValidateDraft(t *testing.T) {
	users := sampleUsers()
	designerViewer := Viewer{UserID: 2, Role: RoleDesigner}
	smm := Viewer{UserID: 3, Role: RoleSMMManager}

	tests := []struct {
		name   string
		viewer Viewer
		draft  Draft
		err    error
	}{
		{
			name:   "designer task for designer",
			viewer: smm,
			draft:  Draft{Title: "Banner", ExecutorID: 7, TaskType: "Motion", TaskFormat: "9:16"},
		},
		{
			name:   "type from executor vocabulary not author",
			viewer: smm,
			draft:  Draft{Title: "Banner", ExecutorID: 7, TaskType: "Пост"},
			err:    ErrInvalidTaskType,
		},
		{
			name:   "format only for designers",
			viewer: smm,
			draft:  Draft{Title: "Post", ExecutorID: 3, TaskType: "Пост", TaskFormat: "1:1"},
			err:    ErrInvalidTaskFormat,
		},
		{
			name:   "designer cannot assign manager",
			viewer: designerViewer,
			draft:  Draft{Title: "Help", ExecutorID: 3},
			err:    ErrExecutorNotAssignable,
		},
		{
			name:   "inactive never assignable",
			viewer: Viewer{UserID: 1, Role: RoleAdmin},
			draft:  Draft{Title: "Ghost", ExecutorID: 6},
			err:    ErrExecutorNotAssignable,
		},
		{
			name:   "self assignment allowed",
			viewer: Viewer{UserID: 4, Role: RoleHeadSMM},
			draft:  Draft{Title: "Plan", ExecutorID: 4, TaskType: "Контент-план"},
		},
		{
			name:   "empty title",
			viewer: smm,
			draft:  Draft{Title: " "},
			err:    ErrEmptyTitle,
		},
		{
			name:   "template with deadline",
			viewer: smm,
			draft: Draft{
				Title: "Weekly report", ExecutorID: 3, IsRecurring: true,
				RecurrenceType: RecurrenceWeekly, RecurrenceTime: "10:00", RecurrenceDays: "1",
				Deadline: mustTimestamp("2024-01-01T10:00"),
			},
			err: ErrRecurringDeadline,
		},
		{
			name:   "valid template",
			viewer: smm,
			draft: Draft{
				Title: "Weekly report", ExecutorID: 3, IsRecurring: true,
				RecurrenceType: RecurrenceWeekly, RecurrenceTime: "10:00", RecurrenceDays: "1,3",
			},
		},
		{
			name:   "recurrence fields on one-shot task",
			viewer: smm,
			draft:  Draft{Title: "Once", ExecutorID: 3, RecurrenceTime: "10:00"},
			err:    ErrInvalidRecurrence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDraft(tt.viewer, tt.draft, users)
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

func mustTimestamp(value string) *Timestamp {
	ts, err := ParseTimestamp(value)
	if err != nil {
		panic(err)
	}
	return ts
}
