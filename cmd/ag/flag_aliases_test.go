package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestTaskFieldAliasesSetCanonicalFlags(t *testing.T) {
	var description, taskType, deadline string
	var executor int
	cmd := &cobra.Command{Use: "create"}
	addTaskFieldFlagAliases(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&taskType, "type", "t", "", "Task type")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline")
	cmd.Flags().IntVar(&executor, "executor", 0, "Executor")

	cmd.SetArgs([]string{"--desc", "Hello", "--task_type", "Motion", "--due", "2026-02-01T10:00", "--executor-id", "5"})
	cmd.RunE = func(*cobra.Command, []string) error { return nil }
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if description != "Hello" || taskType != "Motion" || deadline != "2026-02-01T10:00" || executor != 5 {
		t.Fatalf("aliases not applied: %q %q %q %d", description, taskType, deadline, executor)
	}
	if changed := changedFlags(cmd, "description", "type", "deadline", "executor"); len(changed) != 4 {
		t.Fatalf("expected canonical flags marked changed, got %v", changed)
	}

	usage := cmd.Flags().FlagUsages()
	for _, alias := range []string{"--desc ", "--task_type", "--due", "--executor-id"} {
		if strings.Contains(usage, alias) {
			t.Fatalf("did not expect alias %s in usage, got %q", alias, usage)
		}
	}
	if !strings.Contains(usage, "-d, --description") {
		t.Fatalf("expected shorthand to appear inline, got %q", usage)
	}
}

func TestUserIDAliases(t *testing.T) {
	for _, alias := range []string{"user_id", "userId", "user-id"} {
		t.Run(alias, func(t *testing.T) {
			var userID int
			cmd := &cobra.Command{Use: "login"}
			cmd.Flags().IntVar(&userID, "user-id", 0, "")
			setFlagAliases(cmd.Flags(), userIDFlagAliases)

			if err := cmd.Flags().Set(alias, "7"); err != nil {
				t.Fatalf("set %s: %v", alias, err)
			}
			if userID != 7 {
				t.Fatalf("expected 7, got %d", userID)
			}
		})
	}
}
