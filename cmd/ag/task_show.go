package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amonks/agency/internal/markdown"
	internalstrings "github.com/amonks/agency/internal/strings"
	"github.com/amonks/agency/internal/ui"
	"github.com/amonks/agency/task"
)

const defaultShowWidth = 80

func runTaskShow(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}

	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := b.Task(id)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
	}

	if taskShowJSON {
		return writeJSON(cmd, tasks)
	}

	width := terminalWidth()
	now := b.Now()
	for i, t := range tasks {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(formatTaskDetail(t, b.Viewer(), b.Users(), now, width))
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	return defaultShowWidth
}

func formatTaskDetail(t task.Task, viewer task.Viewer, users []task.User, now time.Time, width int) string {
	byID := task.UserByID(users)
	template := t.IsTemplate()

	var b strings.Builder
	title := internalstrings.NormalizeWhitespace(t.Title)
	b.WriteString(wordwrap.String(title, width))
	b.WriteString("\n\n")

	writeField := func(label, value string) {
		fmt.Fprintf(&b, "%-10s %s\n", label+":", dashIfEmpty(value))
	}
	writeField("ID", strconv.Itoa(t.ID))
	writeField("Status", task.StatusLabel(task.EffectiveStatus(t, now), template))
	priority := "normal"
	if t.HighPriority {
		priority = "high"
	}
	writeField("Priority", priority)
	writeField("Project", t.Project)
	writeField("Type", t.TaskType)
	writeField("Format", t.TaskFormat)
	writeField("Author", userName(byID, t.AuthorID))
	writeField("Executor", userName(byID, t.ExecutorID))
	writeField("Created", ui.FormatTime(timestampTime(t.CreatedAt)))

	if template {
		writeField("Schedule", task.RecurrenceRule(t))
		next := ""
		if at, ok := task.NextRun(t, now); ok {
			next = ui.FormatTime(at)
		}
		writeField("Next run", next)
	} else {
		writeField("Deadline", ui.FormatTime(timestampTime(t.Deadline)))
		if t.Status != task.StatusDone {
			writeField("Time left", ui.FormatCountdown(task.TimeLeft(t, now)))
		}
		worked := ""
		if d, ok := task.WorkDuration(t, now); ok {
			worked = ui.FormatDurationShort(d)
		}
		writeField("Worked", worked)
		if t.ResumeCount > 0 {
			writeField("Resumed", strconv.Itoa(t.ResumeCount))
		}
	}

	actions := task.Actions(viewer, t, now)
	labels := make([]string, len(actions))
	for i, action := range actions {
		labels[i] = fmt.Sprintf("%s (%s)", task.ActionLabel(action, template), action)
	}
	writeField("Actions", strings.Join(labels, ", "))

	if !internalstrings.IsBlank(t.Description) {
		b.WriteString("\nDescription:\n")
		rendered := markdown.SafeRender(width, 2, []byte(t.Description))
		b.Write(rendered)
		b.WriteString("\n")
	}
	return b.String()
}

func timestampTime(ts *task.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.Time
}

func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(internalstrings.TrimSpace(arg))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid task id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
