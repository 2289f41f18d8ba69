package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// taskFieldFlagAliases maps the backend's field names and short forms onto
// the create/update flags.
var taskFieldFlagAliases = map[string]string{
	"desc":            "description",
	"task-type":       "type",
	"task_type":       "type",
	"task-format":     "format",
	"task_format":     "format",
	"executor-id":     "executor",
	"executor_id":     "executor",
	"due":             "deadline",
	"recurrence-time": "at",
	"recurrence-days": "days",
}

var userIDFlagAliases = map[string]string{
	"user_id": "user-id",
	"userId":  "user-id",
}

func addTaskFieldFlagAliases(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), taskFieldFlagAliases)
	}
}

// setFlagAliases resolves aliases before any existing normalization. Aliases
// never show up in usage output.
func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if target, ok := aliases[name]; ok {
			name = target
		}
		return normalize(f, name)
	})
}
