// Package tui implements the interactive facet picker: a three-step
// bubbletea flow that walks the operator through operation type, drone
// platform and drone count before generation.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilddrones/preflight/internal/config"
	"github.com/wilddrones/preflight/internal/filter"
)

// stage tracks which facet the picker is currently asking for.
type stage int

const (
	stageOperation stage = iota
	stagePlatform
	stageCount
	stageDone
)

var stageFacets = map[stage]config.Facet{
	stageOperation: config.FacetOperationType,
	stagePlatform:  config.FacetDronePlatform,
	stageCount:     config.FacetDroneCount,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	stepStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 2)
)

// facetItem implements list.Item for one facet option.
type facetItem struct {
	code string
	name string
}

func (i facetItem) Title() string       { return i.name }
func (i facetItem) Description() string { return i.code }
func (i facetItem) FilterValue() string { return i.name }

// Picker is the bubbletea model for the three-facet selection flow.
type Picker struct {
	registry  *config.Registry
	menu      list.Model
	stage     stage
	selection filter.Selection
	canceled  bool
	width     int
	height    int
}

// NewPicker builds the picker starting at the operation type stage.
func NewPicker(reg *config.Registry) *Picker {
	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowTitle(false)

	p := &Picker{
		registry: reg,
		menu:     menu,
	}
	p.loadStage(stageOperation)
	return p
}

// Selection returns the completed triple; ok is false when the operator
// quit before finishing.
func (p *Picker) Selection() (filter.Selection, bool) {
	return p.selection, p.stage == stageDone && !p.canceled
}

func (p *Picker) loadStage(s stage) {
	p.stage = s
	if s == stageDone {
		return
	}
	opts := p.registry.Options(stageFacets[s])
	items := make([]list.Item, len(opts))
	for i, opt := range opts {
		items[i] = facetItem{code: opt.Code, name: opt.DisplayName}
	}
	p.menu.SetItems(items)
	p.menu.Select(0)
}

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.menu.SetSize(max(0, msg.Width-4), max(0, msg.Height-6))
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.canceled = true
			return p, tea.Quit
		case "enter":
			item, ok := p.menu.SelectedItem().(facetItem)
			if !ok {
				return p, nil
			}
			switch p.stage {
			case stageOperation:
				p.selection.Operation = item.code
				p.loadStage(stagePlatform)
			case stagePlatform:
				p.selection.Platform = item.code
				p.loadStage(stageCount)
			case stageCount:
				p.selection.Count = item.code
				p.stage = stageDone
				return p, tea.Quit
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p *Picker) View() string {
	if p.stage == stageDone || p.canceled {
		return ""
	}
	header := headerStyle.Render("Drone Operations Checklist Generator")
	step := stepStyle.Render(stageLabel(p.stage))
	return header + "\n" + step + "\n" + p.menu.View()
}

func stageLabel(s stage) string {
	switch s {
	case stageOperation:
		return "Step 1 of 3 · Select operation type"
	case stagePlatform:
		return "Step 2 of 3 · Select drone platform"
	case stageCount:
		return "Step 3 of 3 · Select number of drones"
	default:
		return ""
	}
}
