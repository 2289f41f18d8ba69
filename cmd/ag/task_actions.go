package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/agency/task"
)

var actionShortHelp = map[task.Action]string{
	task.ActionAccept:        "Accept new tasks assigned to you",
	task.ActionComplete:      "Mark tasks done, or pause a template's autosave",
	task.ActionResume:        "Reopen done tasks, or resume a template's autosave",
	task.ActionDelete:        "Delete tasks",
	task.ActionPriority:      "Toggle the high-priority flag",
	task.ActionStopRecurring: "Turn templates into one-shot tasks",
}

func newTaskActionCmd(action task.Action) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <id>...",
		Short: actionShortHelp[action],
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskAction(cmd, action, args)
		},
	}
}

func runTaskAction(cmd *cobra.Command, action task.Action, args []string) error {
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

	for _, id := range ids {
		t, err := b.Task(id)
		if err != nil {
			return err
		}
		if err := b.Apply(ctx, action, id); err != nil {
			return wrapAuth(fmt.Errorf("%s task %d: %w", action, id, err))
		}
		a.logger.Info().Str("action", string(action)).Int("task", id).Msg("task action applied")
		fmt.Printf("%s: task %d\n", task.ActionLabel(action, t.IsTemplate()), id)
	}
	return nil
}
