package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/agency/internal/credentials"
	internalstrings "github.com/amonks/agency/internal/strings"
	"github.com/amonks/agency/task"
)

func runTaskCreate(cmd *cobra.Command, args []string) error {
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

	deadline, err := task.ParseTimestamp(taskCreateDeadline)
	if err != nil {
		return err
	}
	executor := taskCreateExecutor
	if executor == 0 {
		executor = b.Viewer().UserID
	}

	draft := task.Draft{
		Title:        internalstrings.TrimSpace(args[0]),
		Description:  internalstrings.NormalizeNewlines(taskCreateDescription),
		Project:      internalstrings.TrimSpace(taskCreateProject),
		TaskType:     internalstrings.TrimSpace(taskCreateType),
		TaskFormat:   internalstrings.TrimSpace(taskCreateFormat),
		ExecutorID:   executor,
		Deadline:     deadline,
		HighPriority: taskCreateHigh,
	}
	if !internalstrings.IsBlank(taskCreateRecurring) {
		draft.IsRecurring = true
		draft.RecurrenceType = task.RecurrenceType(internalstrings.NormalizeLowerTrimSpace(taskCreateRecurring))
	}
	draft.RecurrenceTime = internalstrings.TrimSpace(taskCreateAt)
	draft.RecurrenceDays = canonicalDays(taskCreateDays)

	created, err := b.Create(ctx, draft)
	if err != nil {
		return wrapAuth(err)
	}
	if taskCreateJSON {
		return writeJSON(cmd, created)
	}
	if created == nil {
		fmt.Println("Created task")
		return nil
	}
	kind := "task"
	if created.IsTemplate() {
		kind = "recurring task"
	}
	fmt.Printf("Created %s %d: %s\n", kind, created.ID, created.Title)
	return nil
}

// canonicalDays trims whitespace around each day in a comma list.
func canonicalDays(value string) string {
	return strings.Join(internalstrings.SplitList(value), ",")
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}
	if err := requireChangedFlag(cmd, taskFieldFlags...); err != nil {
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

	t, err := b.Task(ids[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("title") {
		t.Title = internalstrings.TrimSpace(taskUpdateTitle)
	}
	if cmd.Flags().Changed("description") {
		t.Description = internalstrings.NormalizeNewlines(taskUpdateDescription)
	}
	if cmd.Flags().Changed("project") {
		t.Project = internalstrings.TrimSpace(taskUpdateProject)
	}
	if cmd.Flags().Changed("type") {
		t.TaskType = internalstrings.TrimSpace(taskUpdateType)
	}
	if cmd.Flags().Changed("format") {
		t.TaskFormat = internalstrings.TrimSpace(taskUpdateFormat)
	}
	if cmd.Flags().Changed("executor") && taskUpdateExecutor != t.ExecutorID {
		viewer := b.Viewer()
		if taskUpdateExecutor != viewer.UserID && !offersUser(task.AssignableUsers(viewer, b.Users()), taskUpdateExecutor) {
			return fmt.Errorf("%w: user %d", task.ErrExecutorNotAssignable, taskUpdateExecutor)
		}
		t.ExecutorID = taskUpdateExecutor
	}
	if cmd.Flags().Changed("deadline") {
		deadline, err := task.ParseTimestamp(taskUpdateDeadline)
		if err != nil {
			return err
		}
		t.Deadline = deadline
	}
	if hasChangedFlags(cmd, "at", "days") {
		if !t.IsTemplate() {
			return fmt.Errorf("%w: task %d", task.ErrNotTemplate, t.ID)
		}
		if cmd.Flags().Changed("at") {
			t.RecurrenceTime = internalstrings.TrimSpace(taskUpdateAt)
		}
		if cmd.Flags().Changed("days") {
			t.RecurrenceDays = canonicalDays(taskUpdateDays)
		}
		if err := task.ValidateRecurrence(t.RecurrenceType, t.RecurrenceTime, t.RecurrenceDays); err != nil {
			return err
		}
	}

	if _, err := b.Update(ctx, t); err != nil {
		return wrapAuth(err)
	}
	fmt.Printf("Updated task %d\n", t.ID)
	return nil
}

func runTaskTypes(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	role, err := task.ParseRole(taskTypesRole)
	if err != nil {
		return err
	}
	switch {
	case taskTypesExecutor != 0:
		ctx := commandContext(cmd)
		b, err := a.openBoard(ctx)
		if err != nil {
			return err
		}
		executor, ok := task.UserByID(b.Users())[taskTypesExecutor]
		if !ok {
			return fmt.Errorf("unknown user %d", taskTypesExecutor)
		}
		role = executor.Role
	case role == "":
		creds, err := credentials.Require(a.store)
		if err != nil {
			return withExitCode(authExitCode, err)
		}
		role = creds.Role
	}

	fmt.Printf("Task types for %s:\n", role)
	for _, name := range task.TaskTypesForRole(role) {
		fmt.Printf("  %s\n", name)
	}
	if formats := task.FormatsForRole(role); len(formats) > 0 {
		fmt.Printf("Formats: %s\n", strings.Join(formats, ", "))
	}
	return nil
}
