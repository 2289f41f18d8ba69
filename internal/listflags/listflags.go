// Package listflags holds flags shared by list commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool, usage string) {
	if usage == "" {
		usage = "Include hidden entries"
	}
	if target == nil {
		cmd.Flags().Bool("all", false, usage)
		return
	}

	cmd.Flags().BoolVar(target, "all", false, usage)
}

// AddJSONFlag adds a shared --json flag to list commands.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
