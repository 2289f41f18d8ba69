package main

import (

	"github.com/spf13/cobra"

	"github.com/amonks/agency/internal/boardtui"
)

func runTaskBoard(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	interval, err := a.cfg.TickInterval()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	b, err := a.openBoard(ctx)
	if err != nil {
		return err
	}
	return boardtui.Run(ctx, b, a.store, interval)
}
