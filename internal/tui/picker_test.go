package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilddrones/preflight/internal/config"
)

func testRegistry(t *testing.T) *config.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constants.json")
	content := `{
		"operation_types": [["VLOS", "VLOS"], ["NIGHT_VLOS", "Night VLOS"]],
		"drone_platforms": [["DJI", "DJI"], ["EBEE", "Ebee X"]],
		"number_of_drones": [["SINGLE", "Single Drone"], ["SWARM", "Swarm of Drones"]]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := config.LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}

func press(t *testing.T, model tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := model.Update(msg)
	return next
}

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPickerWalksThreeStages(t *testing.T) {
	var model tea.Model = NewPicker(testRegistry(t))
	model = press(t, model, tea.WindowSizeMsg{Width: 80, Height: 24})

	// Operation: second option. Platform: first. Count: second.
	model = press(t, model, key("down"))
	model = press(t, model, key("enter"))
	model = press(t, model, key("enter"))
	model = press(t, model, key("down"))
	model = press(t, model, key("enter"))

	picker := model.(*Picker)
	sel, done := picker.Selection()
	if !done {
		t.Fatal("picker should be done after three selections")
	}
	if sel.Operation != "NIGHT_VLOS" || sel.Platform != "DJI" || sel.Count != "SWARM" {
		t.Fatalf("selection = %+v", sel)
	}
}

func TestPickerCancel(t *testing.T) {
	var model tea.Model = NewPicker(testRegistry(t))
	model = press(t, model, tea.WindowSizeMsg{Width: 80, Height: 24})
	model = press(t, model, key("enter"))
	model = press(t, model, key("esc"))

	picker := model.(*Picker)
	if _, done := picker.Selection(); done {
		t.Fatal("canceled picker must not report a completed selection")
	}
}

func TestPickerViewNamesCurrentStage(t *testing.T) {
	var model tea.Model = NewPicker(testRegistry(t))
	model = press(t, model, tea.WindowSizeMsg{Width: 80, Height: 24})

	picker := model.(*Picker)
	view := picker.View()
	if view == "" {
		t.Fatal("active picker must render something")
	}
	model = press(t, model, key("enter"))
	picker = model.(*Picker)
	if picker.stage != stagePlatform {
		t.Fatalf("stage = %v, want platform stage after first selection", picker.stage)
	}
}
