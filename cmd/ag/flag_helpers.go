package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// taskFieldFlags are the update flags that change a task field.
var taskFieldFlags = []string{"title", "description", "project", "type", "format", "executor", "deadline", "at", "days"}

// listFilterFlags are the list flags persisted into the active tab's filter scope.
var listFilterFlags = []string{"role", "user", "project", "date", "status"}

// changedFlags returns the flags the user set, in the order given.
func changedFlags(cmd *cobra.Command, flags ...string) []string {
	var changed []string
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			changed = append(changed, flag)
		}
	}
	return changed
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	return len(changedFlags(cmd, flags...)) > 0
}

func requireChangedFlag(cmd *cobra.Command, flags ...string) error {
	if hasChangedFlags(cmd, flags...) {
		return nil
	}
	names := make([]string, len(flags))
	for i, flag := range flags {
		names[i] = "--" + flag
	}
	return fmt.Errorf("nothing to update: pass one of %s", strings.Join(names, ", "))
}
