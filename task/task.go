package task

// Task is a unit of work tracked by the agency backend.
type Task struct {
	// ID is assigned by the backend.
	ID int `json:"id"`

	// Title is the short summary of the task (max 500 chars).
	Title string `json:"title"`

	// Description provides additional context about the task.
	Description string `json:"description,omitempty"`

	// Project is a project name used as a label, not a reference.
	Project string `json:"project,omitempty"`

	// TaskType comes from the vocabulary of the executor's role.
	TaskType string `json:"task_type,omitempty"`

	// TaskFormat is an aspect ratio, only meaningful for designer executors.
	TaskFormat string `json:"task_format,omitempty"`

	// AuthorID is the creator. The client never changes it after creation.
	AuthorID int `json:"author_id"`

	// ExecutorID is the assignee (0 when unassigned).
	ExecutorID int `json:"executor_id,omitempty"`

	CreatedAt  *Timestamp `json:"created_at,omitempty"`
	AcceptedAt *Timestamp `json:"accepted_at,omitempty"`
	FinishedAt *Timestamp `json:"finished_at,omitempty"`

	// Deadline is the combined date and time the task is due.
	Deadline *Timestamp `json:"deadline,omitempty"`

	Status Status `json:"status"`

	HighPriority bool `json:"high_priority"`

	// IsRecurring marks the task as a template for the backend's recurrence engine.
	IsRecurring bool `json:"is_recurring"`

	RecurrenceType RecurrenceType `json:"recurrence_type,omitempty"`

	// RecurrenceTime is the time of day in HH:MM.
	RecurrenceTime string `json:"recurrence_time,omitempty"`

	// RecurrenceDays is a comma-separated list of ISO weekdays (1-7) for daily
	// and weekly templates, or a single day of month (1-31) for monthly ones.
	RecurrenceDays string `json:"recurrence_days,omitempty"`

	// NextRunAt is computed by the backend and read-only for clients.
	NextRunAt *Timestamp `json:"next_run_at,omitempty"`

	// ResumeCount is incremented by the backend each time a done task is resumed.
	ResumeCount int `json:"resume_count,omitempty"`
}

// IsTemplate reports whether the task is a recurring template rather than a unit of work.
func (t Task) IsTemplate() bool {
	return t.IsRecurring
}

// User is an agency member who can author or execute tasks.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Active reports whether the user may appear in assignment pools.
func (u User) Active() bool {
	return u.Role != RoleInactive
}

// Project is a client project used to label tasks.
type Project struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Archived bool   `json:"archived,omitempty"`
}

// Draft holds the fields a client sends to create a task.
type Draft struct {
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Project        string         `json:"project,omitempty"`
	TaskType       string         `json:"task_type,omitempty"`
	TaskFormat     string         `json:"task_format,omitempty"`
	AuthorID       int            `json:"author_id"`
	ExecutorID     int            `json:"executor_id,omitempty"`
	Deadline       *Timestamp     `json:"deadline,omitempty"`
	HighPriority   bool           `json:"high_priority"`
	IsRecurring    bool           `json:"is_recurring"`
	RecurrenceType RecurrenceType `json:"recurrence_type,omitempty"`
	RecurrenceTime string         `json:"recurrence_time,omitempty"`
	RecurrenceDays string         `json:"recurrence_days,omitempty"`
}

// UserByID indexes users by ID.
func UserByID(users []User) map[int]User {
	index := make(map[int]User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index
}

// FindTask returns the task with the given ID.
func FindTask(tasks []Task, id int) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
