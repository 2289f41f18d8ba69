package ui

import (
	"testing"

	"github.com/amonks/agency/task"
)

func TestFormatStatusPlain(t *testing.T) {
	cases := []struct {
		status   task.Status
		template bool
		want     string
	}{
		{task.StatusInProgress, false, "in progress"},
		{task.StatusDone, false, "done"},
		{task.StatusDone, true, "paused"},
		{task.StatusOverdue, false, "overdue"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatStatus(tc.status, tc.template, false); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestColorEnabledHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled() {
		t.Fatal("expected NO_COLOR to disable colour")
	}
}

func TestFormatPriority(t *testing.T) {
	if got := FormatPriority(false, false); got != "" {
		t.Fatalf("expected empty marker, got %q", got)
	}
	if got := FormatPriority(true, false); got != "!" {
		t.Fatalf("expected !, got %q", got)
	}
}
