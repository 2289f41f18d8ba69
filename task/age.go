package task

import (
	"time"

	"github.com/amonks/agency/internal/age"
)

// TimeLeft returns the signed time left before the task's deadline at now.
// Templates and tasks without a deadline report false.
func TimeLeft(t Task, now time.Time) (time.Duration, bool) {
	if t.IsTemplate() {
		return 0, false
	}
	return age.Until(timeOf(t.Deadline), now)
}

// WorkDuration returns how long the executor has worked on the task: from
// acceptance until now while in progress, or until it was finished.
func WorkDuration(t Task, now time.Time) (time.Duration, bool) {
	active := normalizeStatus(t.Status) != StatusDone
	return age.Elapsed(timeOf(t.AcceptedAt), timeOf(t.FinishedAt), active, now)
}
