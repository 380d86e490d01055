package listingwizard

import (
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/tui/theme"
)

// ConfirmationModal is a reusable Y/N confirmation overlay.
type ConfirmationModal struct {
	title   string
	message string
	visible bool
}

// NewConfirmationModal creates a hidden confirmation modal.
func NewConfirmationModal(title, message string) *ConfirmationModal {
	return &ConfirmationModal{
		title:   title,
		message: message,
	}
}

// Show makes the modal visible.
func (m *ConfirmationModal) Show() {
	m.visible = true
}

// Hide hides the modal.
func (m *ConfirmationModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is currently visible.
func (m *ConfirmationModal) IsVisible() bool {
	return m.visible
}

// Render renders the confirmation modal.
func (m *ConfirmationModal) Render() string {
	return RenderConfirmationModal(m.title, m.message)
}

// RenderConfirmationModal renders a Y/N confirmation modal with the given
// title and message.
func RenderConfirmationModal(title, message string) string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Warning)).
		MarginBottom(1)
	titleText := titleStyle.Render("⚠ " + title)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1)
	messageText := messageStyle.Render(message)

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))
	buttons := buttonStyle.Render("Press Y to confirm, N or ESC to cancel")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleText,
		messageText,
		"",
		buttons,
	)

	modalStyle := lipgloss.NewStyle().
		Width(50).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Warning))

	return modalStyle.Render(content)
}
