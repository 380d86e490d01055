package listingwizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/registry"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// SelectStep is the property type chooser.
type SelectStep struct {
	options []string
	cursor  int
	err     string
	width   int
	height  int
}

// NewSelectStep creates the chooser, pre-selecting the current value if set.
func NewSelectStep(data listing.FormData) *SelectStep {
	options := registry.PropertyTypes()
	cursor := 0
	for i, opt := range options {
		if opt == data.PropertyType {
			cursor = i
			break
		}
	}
	return &SelectStep{options: options, cursor: cursor}
}

func (s *SelectStep) Init() tea.Cmd {
	return nil
}

func (s *SelectStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
			s.err = ""
		case "down", "j":
			if s.cursor < len(s.options)-1 {
				s.cursor++
			}
			s.err = ""
		case "enter":
			return s.Submit()
		case "tab":
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return TabExitBackwardMsg{} }
		}
	}
	return nil
}

func (s *SelectStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render("Which of these best describes your place?")

	normalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Bold(true)

	rows := make([]string, 0, len(s.options)+2)
	rows = append(rows, instruction)
	for i, opt := range s.options {
		if i == s.cursor {
			rows = append(rows, selectedStyle.Render("▸ "+opt))
		} else {
			rows = append(rows, normalStyle.Render("  "+opt))
		}
	}

	if s.err != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true).
			MarginTop(1)
		rows = append(rows, errStyle.Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *SelectStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *SelectStep) Focus() {}
func (s *SelectStep) Blur()  {}

func (s *SelectStep) Submit() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.options) {
		s.err = "Please select a property type"
		return nil
	}
	return submitCmd(listing.Patch{PropertyType: listing.String(s.options[s.cursor])})
}

func (s *SelectStep) EditPatch() listing.Patch {
	if s.cursor < 0 || s.cursor >= len(s.options) {
		return listing.Patch{}
	}
	return listing.Patch{PropertyType: listing.String(s.options[s.cursor])}
}
