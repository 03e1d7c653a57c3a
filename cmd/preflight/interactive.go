package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wilddrones/preflight/internal/tui"
)

// interactiveCmd walks the operator through the three facets with a terminal
// UI, then generates for the picked selection.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Pick the selection through a terminal UI, then generate",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		program := tea.NewProgram(tui.NewPicker(a.registry), tea.WithAltScreen())
		model, err := program.Run()
		if err != nil {
			return fmt.Errorf("interactive picker: %w", err)
		}
		picker, ok := model.(*tui.Picker)
		if !ok {
			return fmt.Errorf("interactive picker: unexpected model %T", model)
		}
		sel, done := picker.Selection()
		if !done {
			fmt.Println("Canceled.")
			return nil
		}

		runDir, err := a.generate(sel)
		if err != nil {
			return err
		}
		fmt.Println(runDir)
		return nil
	},
}
