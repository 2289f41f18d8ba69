package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/agency/internal/credentials"
	"github.com/amonks/agency/task"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the bearer token and identity used for backend calls",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token and every saved filter",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var (
	loginToken  string
	loginRole   string
	loginUserID int
)

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)

	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token issued by the backend")
	loginCmd.Flags().StringVar(&loginRole, "role", "", "Your role (designer, smm_manager, head_smm, digital, admin)")
	loginCmd.Flags().IntVar(&loginUserID, "user-id", 0, "Your user id")
	_ = loginCmd.MarkFlagRequired("token")
	_ = loginCmd.MarkFlagRequired("role")
	_ = loginCmd.MarkFlagRequired("user-id")
	setFlagAliases(loginCmd.Flags(), userIDFlagAliases)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	creds := credentials.Credentials{Token: loginToken, Role: task.Role(loginRole), UserID: loginUserID}
	if err := credentials.Save(a.store, creds); err != nil {
		return err
	}
	fmt.Printf("Logged in as user %d (%s)\n", loginUserID, loginRole)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := credentials.Clear(a.store); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	cleared, err := a.store.ClearFilters()
	if err != nil {
		return fmt.Errorf("clear filters: %w", err)
	}
	fmt.Printf("Logged out (%d saved filters cleared)\n", cleared)
	return nil
}
