package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// BlastSelection holds the user's choice from the difficulty menu.
type BlastSelection struct {
	Preset string // "easy", "normal", "hard" or "fixed"
}

// blastPresets are the selectable difficulty options, in menu order.
var blastPresets = []struct {
	id    string
	label string
}{
	{"easy", "Easy (5 colors, generous shuffles)"},
	{"normal", "Normal"},
	{"hard", "Hard (6 colors, minimal guarantees)"},
	{"fixed", "Fixed (no difficulty progression)"},
}

// BlastMenuModel lets users choose a difficulty preset before playing.
type BlastMenuModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection BlastSelection
	choosing  bool
	quitting  bool
	back      bool
}

// NewBlastMenuModel creates a new difficulty selection model.
func NewBlastMenuModel(width, height int) BlastMenuModel {
	return BlastMenuModel{
		cursor:    1, // Default to Normal
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m BlastMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BlastMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m BlastMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(blastPresets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = BlastSelection{Preset: blastPresets[m.cursor].id}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty selection.
func (m BlastMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B L A S T", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, preset := range blastPresets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, preset.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m BlastMenuModel) Selected() *BlastSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m BlastMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BlastMenuModel) WantsBack() bool {
	return m.back
}

// RunBlastMenu runs the difficulty selection and returns the selection.
// A nil selection means the user backed out or quit.
func RunBlastMenu(cfg core.RuntimeConfig) (*BlastSelection, core.RuntimeConfig, error) {
	model := NewBlastMenuModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(BlastMenuModel)
	if !ok {
		return nil, cfg, nil
	}

	// Carry resize updates back to the caller
	cfg.ScreenW = m.width
	cfg.ScreenH = m.height

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
