package task

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var weekdayNames = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ParseRecurrenceTime parses an HH:MM time of day.
func ParseRecurrenceTime(value string) (hour, minute int, err error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidRecurrence, value)
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidRecurrence, value)
	}
	return hour, minute, nil
}

// ParseRecurrenceDays parses the comma-separated day list of a template.
// Daily and weekly templates use ISO weekdays (1 = Monday, 7 = Sunday);
// monthly templates use a single day of month.
func ParseRecurrenceDays(kind RecurrenceType, value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	maxDay := 7
	if kind == RecurrenceMonthly {
		maxDay = 31
	}

	seen := make(map[int]bool)
	var days []int
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		day, err := strconv.Atoi(field)
		if err != nil || day < 1 || day > maxDay {
			return nil, fmt.Errorf("%w: day %q out of range 1-%d", ErrInvalidRecurrence, field, maxDay)
		}
		if seen[day] {
			return nil, fmt.Errorf("%w: day %d listed twice", ErrInvalidRecurrence, day)
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Ints(days)
	return days, nil
}

// FormatRecurrenceDays renders days in the wire format.
func FormatRecurrenceDays(days []int) string {
	parts := make([]string, len(days))
	for i, day := range days {
		parts[i] = strconv.Itoa(day)
	}
	return strings.Join(parts, ",")
}

// ValidateRecurrence checks the recurrence fields of a template.
func ValidateRecurrence(kind RecurrenceType, at string, days string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: type %q", ErrInvalidRecurrence, kind)
	}
	if _, _, err := ParseRecurrenceTime(at); err != nil {
		return err
	}
	parsed, err := ParseRecurrenceDays(kind, days)
	if err != nil {
		return err
	}
	switch kind {
	case RecurrenceWeekly:
		if len(parsed) == 0 {
			return fmt.Errorf("%w: weekly recurrence needs at least one weekday", ErrInvalidRecurrence)
		}
	case RecurrenceMonthly:
		if len(parsed) != 1 {
			return fmt.Errorf("%w: monthly recurrence needs exactly one day of month", ErrInvalidRecurrence)
		}
	}
	return nil
}

// RecurrenceRule renders a short summary such as "weekly Mon,Wed at 10:00".
// It returns the empty string for regular tasks.
func RecurrenceRule(t Task) string {
	if !t.IsTemplate() {
		return ""
	}
	days, err := ParseRecurrenceDays(t.RecurrenceType, t.RecurrenceDays)
	if err != nil {
		return fmt.Sprintf("%s %s at %s", t.RecurrenceType, t.RecurrenceDays, t.RecurrenceTime)
	}

	var b strings.Builder
	b.WriteString(string(t.RecurrenceType))
	switch {
	case t.RecurrenceType == RecurrenceMonthly && len(days) > 0:
		fmt.Fprintf(&b, " on day %d", days[0])
	case len(days) > 0:
		names := make([]string, len(days))
		for i, day := range days {
			names[i] = weekdayNames[day]
		}
		b.WriteString(" " + strings.Join(names, ","))
	}
	if t.RecurrenceTime != "" {
		b.WriteString(" at " + t.RecurrenceTime)
	}
	return b.String()
}

// cronSpec translates template fields into a standard five-field cron spec.
// ISO Sunday (7) becomes cron's 0.
func cronSpec(kind RecurrenceType, at string, days string) (string, error) {
	if err := ValidateRecurrence(kind, at, days); err != nil {
		return "", err
	}
	hour, minute, _ := ParseRecurrenceTime(at)
	parsed, _ := ParseRecurrenceDays(kind, days)

	if kind == RecurrenceMonthly {
		return fmt.Sprintf("%d %d %d * *", minute, hour, parsed[0]), nil
	}
	if len(parsed) == 0 {
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	}
	weekdays := make([]string, len(parsed))
	for i, day := range parsed {
		weekdays[i] = strconv.Itoa(day % 7)
	}
	return fmt.Sprintf("%d %d * * %s", minute, hour, strings.Join(weekdays, ",")), nil
}

// NextRunPreview computes the next time the template fires after at, in
// at's location.
func NextRunPreview(t Task, at time.Time) (time.Time, error) {
	if !t.IsTemplate() {
		return time.Time{}, fmt.Errorf("%w: task %d", ErrNotTemplate, t.ID)
	}
	spec, err := cronSpec(t.RecurrenceType, t.RecurrenceTime, t.RecurrenceDays)
	if err != nil {
		return time.Time{}, err
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	if specSchedule, ok := schedule.(*cron.SpecSchedule); ok {
		specSchedule.Location = at.Location()
	}
	return schedule.Next(at), nil
}

// NextRun returns the backend's next_run_at when set and otherwise a local preview.
func NextRun(t Task, at time.Time) (time.Time, bool) {
	if !t.IsTemplate() {
		return time.Time{}, false
	}
	if next := timeOf(t.NextRunAt); !next.IsZero() {
		return next, true
	}
	preview, err := NextRunPreview(t, at)
	if err != nil {
		return time.Time{}, false
	}
	return preview, true
}

// StopRecurringPatch is the partial-update body that turns a template into a
// one-shot task.
func StopRecurringPatch() map[string]any {
	return map[string]any{
		"is_recurring":    false,
		"recurrence_type": nil,
		"recurrence_time": nil,
		"recurrence_days": nil,
	}
}
