package listingwizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// TextareaStep handles the listing description with validation.
type TextareaStep struct {
	textarea textarea.Model
	err      string
	width    int
	height   int
}

// NewTextareaStep creates the description editor, pre-filled from form data.
func NewTextareaStep(data listing.FormData) *TextareaStep {
	ta := textarea.New()
	ta.Placeholder = "Describe your place...\n\nWhat makes it special? What's nearby?\nWhat should tenants know before moving in?"
	ta.CharLimit = 5000
	ta.SetHeight(8)
	ta.SetWidth(60)
	ta.SetValue(data.Description)
	ta.Focus()

	return &TextareaStep{textarea: ta}
}

// validateDescription checks if the description is valid.
func validateDescription(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if len(s) > 5000 {
		return fmt.Errorf("description too long (max 5000 characters)")
	}
	return nil
}

func (s *TextareaStep) Init() tea.Cmd {
	return textarea.Blink
}

func (s *TextareaStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+d":
			// Enter inserts newlines in a textarea, so Ctrl+D submits
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
	s.textarea, cmd = s.textarea.Update(msg)
	return cmd
}

func (s *TextareaStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render("Describe your place to prospective tenants:")

	textareaStyle := lipgloss.NewStyle().
		Width(62).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Italic(true).
		MarginTop(1).
		Render("Press Ctrl+D when finished")

	parts := []string{instruction, textareaStyle.Render(s.textarea.View()), hint}

	if s.err != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true).
			MarginTop(1)
		parts = append(parts, errStyle.Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *TextareaStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	maxHeight := height - 12
	if maxHeight < 6 {
		maxHeight = 6
	}
	if maxHeight > 15 {
		maxHeight = 15
	}
	s.textarea.SetHeight(maxHeight)
}

func (s *TextareaStep) Focus() {
	s.textarea.Focus()
}

func (s *TextareaStep) Blur() {
	s.textarea.Blur()
}

func (s *TextareaStep) Submit() tea.Cmd {
	value := strings.TrimSpace(s.textarea.Value())
	if err := validateDescription(value); err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return submitCmd(listing.Patch{Description: listing.String(value)})
}

func (s *TextareaStep) EditPatch() listing.Patch {
	value := strings.TrimSpace(s.textarea.Value())
	if value == "" {
		return listing.Patch{}
	}
	return listing.Patch{Description: listing.String(value)}
}
