package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wilddrones/preflight/internal/logbook"
)

var runsLimit int

// runsCmd tails the run journal kept next to the output folders.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the most recent generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		journal, err := logbook.InDir(a.cfg.OutputDir)
		if err != nil {
			return err
		}
		lines, total, err := journal.Tail(runsLimit)
		if err != nil {
			return err
		}
		if total == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		if total > len(lines) {
			fmt.Printf("(%d earlier runs not shown)\n", total-len(lines))
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum number of runs to show")
}
