package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/agency/task"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "List, inspect and act on tasks",
}

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks of a tab",
	Long: `List tasks of the regular or recurring tab.

Filter flags that are given are saved into the tab's filter scope; flags
that are not given are read from it, so a filter sticks until it is changed
or reset. Use "all" to clear a single filter and --reset to clear them all.`,
	Args: cobra.NoArgs,
	RunE: runTaskList,
}

var (
	taskListTab     string
	taskListRole    string
	taskListUser    int
	taskListProject string
	taskListDate    string
	taskListStatus  string
	taskListJSON    bool
	taskListReset   bool
)

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task create
var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a task or a recurring template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskCreate,
}

var (
	taskCreateExecutor    int
	taskCreateType        string
	taskCreateFormat      string
	taskCreateProject     string
	taskCreateDeadline    string
	taskCreateDescription string
	taskCreateHigh        bool
	taskCreateRecurring   string
	taskCreateAt          string
	taskCreateDays        string
	taskCreateJSON        bool
)

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdateProject     string
	taskUpdateType        string
	taskUpdateFormat      string
	taskUpdateExecutor    int
	taskUpdateDeadline    string
	taskUpdateAt          string
	taskUpdateDays        string
)

// task types
var taskTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List task types and formats for an executor",
	Args:  cobra.NoArgs,
	RunE:  runTaskTypes,
}

var (
	taskTypesExecutor int
	taskTypesRole     string
)

// task board
var taskBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the live task board",
	Args:  cobra.NoArgs,
	RunE:  runTaskBoard,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd, taskShowCmd, taskCreateCmd, taskUpdateCmd, taskTypesCmd, taskBoardCmd)
	for _, action := range task.AllActions() {
		taskCmd.AddCommand(newTaskActionCmd(action))
	}

	// task list flags
	taskListCmd.Flags().StringVar(&taskListTab, "tab", "", "Tab to list (regular, recurring); defaults to the last used tab")
	taskListCmd.Flags().StringVar(&taskListRole, "role", "", "Executor role filter (designer, smm_manager, head_smm, digital, admin, all)")
	taskListCmd.Flags().IntVar(&taskListUser, "user", 0, "Executor or author user id filter (0 for all)")
	taskListCmd.Flags().StringVar(&taskListProject, "project", "", "Project name filter (all for every project)")
	taskListCmd.Flags().StringVar(&taskListDate, "date", "", "Creation date filter (today, week, month, all)")
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Status filter (new, in_progress, done, overdue, all)")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
	taskListCmd.Flags().BoolVar(&taskListReset, "reset", false, "Reset the tab's filters before applying flags")

	// task show flags
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	// task create flags
	addTaskFieldFlagAliases(taskCreateCmd, taskUpdateCmd)
	taskCreateCmd.Flags().IntVar(&taskCreateExecutor, "executor", 0, "Executor user id (defaults to yourself)")
	taskCreateCmd.Flags().StringVarP(&taskCreateType, "type", "t", "", "Task type from the executor's vocabulary (see `ag task types`)")
	taskCreateCmd.Flags().StringVar(&taskCreateFormat, "format", "", "Aspect ratio for designer tasks (1:1, 4:5, 9:16, 16:9)")
	taskCreateCmd.Flags().StringVar(&taskCreateProject, "project", "", "Project name")
	taskCreateCmd.Flags().StringVar(&taskCreateDeadline, "deadline", "", "Deadline (YYYY-MM-DDTHH:MM); not allowed on recurring tasks")
	taskCreateCmd.Flags().StringVarP(&taskCreateDescription, "description", "d", "", "Description (markdown)")
	taskCreateCmd.Flags().BoolVar(&taskCreateHigh, "high", false, "Mark as high priority")
	taskCreateCmd.Flags().StringVar(&taskCreateRecurring, "recurring", "", "Create a template recurring daily, weekly or monthly")
	taskCreateCmd.Flags().StringVar(&taskCreateAt, "at", "", "Recurrence time of day (HH:MM)")
	taskCreateCmd.Flags().StringVar(&taskCreateDays, "days", "", "Recurrence days: ISO weekdays 1-7 or a day of month")
	taskCreateCmd.Flags().BoolVar(&taskCreateJSON, "json", false, "Output as JSON")

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDescription, "description", "d", "", "New description")
	taskUpdateCmd.Flags().StringVar(&taskUpdateProject, "project", "", "New project name")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateType, "type", "t", "", "New task type")
	taskUpdateCmd.Flags().StringVar(&taskUpdateFormat, "format", "", "New format")
	taskUpdateCmd.Flags().IntVar(&taskUpdateExecutor, "executor", 0, "New executor user id")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDeadline, "deadline", "", "New deadline (YYYY-MM-DDTHH:MM, empty string clears)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateAt, "at", "", "New recurrence time (templates only)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDays, "days", "", "New recurrence days (templates only)")

	// task types flags
	taskTypesCmd.Flags().IntVar(&taskTypesExecutor, "executor", 0, "Prospective executor user id")
	taskTypesCmd.Flags().StringVar(&taskTypesRole, "role", "", "Executor role (defaults to your own)")
}
