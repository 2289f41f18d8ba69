package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amonks/agency/internal/listflags"
	"github.com/amonks/agency/internal/ui"
	"github.com/amonks/agency/task"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse agency members",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var (
	usersListAssignable bool
	usersListJSON       bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse client projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

var (
	projectsListAll  bool
	projectsListJSON bool
)

func init() {
	rootCmd.AddCommand(usersCmd, projectsCmd)
	usersCmd.AddCommand(usersListCmd)
	projectsCmd.AddCommand(projectsListCmd)

	usersListCmd.Flags().BoolVar(&usersListAssignable, "assignable", false, "Only users you may assign tasks to")
	listflags.AddJSONFlag(usersListCmd, &usersListJSON)
	listflags.AddAllFlag(projectsListCmd, &projectsListAll, "Include archived projects")
	listflags.AddJSONFlag(projectsListCmd, &projectsListJSON)
}

func runUsersList(cmd *cobra.Command, args []string) error {
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

	users := b.Users()
	if usersListAssignable {
		users = task.AssignableUsers(b.Viewer(), users)
	}
	if usersListJSON {
		return writeJSON(cmd, users)
	}
	if len(users) == 0 {
		if usersListAssignable {
			fmt.Println("No assignable users.")
		} else {
			fmt.Println("No users found.")
		}
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "NAME", "ROLE"}, len(users))
	for _, u := range users {
		builder.AddRow([]string{strconv.Itoa(u.ID), u.Name, string(u.Role)})
	}
	fmt.Print(builder.String())
	return nil
}

func runProjectsList(cmd *cobra.Command, args []string) error {
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

	projects := make([]task.Project, 0)
	for _, p := range b.Projects() {
		if p.Archived && !projectsListAll {
			continue
		}
		projects = append(projects, p)
	}
	if projectsListJSON {
		return writeJSON(cmd, projects)
	}
	if len(projects) == 0 {
		if projectsListAll {
			fmt.Println("No projects found.")
		} else {
			fmt.Println("No active projects found. Use --all to include archived projects.")
		}
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "NAME", "ARCHIVED"}, len(projects))
	for _, p := range projects {
		archived := "-"
		if p.Archived {
			archived = "yes"
		}
		builder.AddRow([]string{strconv.Itoa(p.ID), p.Name, archived})
	}
	fmt.Print(builder.String())
	return nil
}
