package listingwizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// TextStep handles the listing title input with validation.
type TextStep struct {
	input  textinput.Model
	err    string
	width  int
	height int
}

// NewTextStep creates the title input, pre-filled from form data.
func NewTextStep(data listing.FormData) *TextStep {
	ti := textinput.New()
	ti.Placeholder = "e.g. 'Cozy studio near KLCC' or 'Family home in Bangsar'"
	ti.CharLimit = 100
	ti.SetValue(data.Title)
	ti.Focus()

	return &TextStep{input: ti}
}

// validateTitle checks if the title is valid.
func validateTitle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if len(s) > 100 {
		return fmt.Errorf("title too long (max 100 characters)")
	}
	return nil
}

func (s *TextStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TextStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			return s.Submit()
		case "tab":
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return TabExitBackwardMsg{} }
		default:
			if s.err != "" {
				s.err = ""
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *TextStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render("Give your place a short, catchy title:")

	inputStyle := lipgloss.NewStyle().
		Width(60).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	rows := []string{instruction, inputStyle.Render(s.input.View())}

	if s.err != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true)
		rows = append(rows, errStyle.Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *TextStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *TextStep) Focus() {
	s.input.Focus()
}

func (s *TextStep) Blur() {
	s.input.Blur()
}

func (s *TextStep) Submit() tea.Cmd {
	value := strings.TrimSpace(s.input.Value())
	if err := validateTitle(value); err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return submitCmd(listing.Patch{Title: listing.String(value)})
}

func (s *TextStep) EditPatch() listing.Patch {
	value := strings.TrimSpace(s.input.Value())
	if value == "" {
		return listing.Patch{}
	}
	return listing.Patch{Title: listing.String(value)}
}
