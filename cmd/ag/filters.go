package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Inspect or reset saved task filters",
}

var filtersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved filter and the remembered tab",
	Args:  cobra.NoArgs,
	RunE:  runFiltersClear,
}

var filtersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print saved filters as JSON",
	Args:  cobra.NoArgs,
	RunE:  runFiltersExport,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
	filtersCmd.AddCommand(filtersClearCmd, filtersExportCmd)
}

func runFiltersClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cleared, err := a.store.ClearFilters()
	if err != nil {
		return fmt.Errorf("clear filters: %w", err)
	}
	fmt.Printf("Cleared %d saved filters\n", cleared)
	return nil
}

func runFiltersExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filters, err := a.store.ExportFilters()
	if err != nil {
		return fmt.Errorf("export filters: %w", err)
	}
	return writeJSON(cmd, filters)
}
