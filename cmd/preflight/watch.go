package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wilddrones/preflight/internal/logging"
	"github.com/wilddrones/preflight/internal/watch"
)

// watchCmd regenerates the selected documents every time the catalog data
// directory changes, until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the catalog data changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		sel := a.selection()
		if err := sel.Validate(a.registry); err != nil {
			return err
		}

		regenerate := func() {
			runDir, err := a.generate(sel)
			if err != nil {
				a.log.Error("regeneration failed", logging.Error(err))
				return
			}
			fmt.Println(runDir)
		}
		regenerate()

		watcher, err := watch.New(a.cfg.DataDir, regenerate, a.log.Named("watch"))
		if err != nil {
			return fmt.Errorf("watch %s: %w", a.cfg.DataDir, err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
