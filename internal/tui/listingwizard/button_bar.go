package listingwizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/tui/theme"
)

// ButtonID identifies a button's action independent of its position.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonBack
	ButtonNext
	ButtonSubmit
)

// Button is a single button in the bar.
type Button struct {
	ID    ButtonID
	Label string
}

// ButtonBar manages a horizontal row of buttons with focus tracking.
type ButtonBar struct {
	buttons []Button
	focused int // index into buttons, -1 when blurred
	width   int
}

// NewButtonBar creates a button bar with no button focused.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width used for centering.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// FocusFirst focuses the first button.
func (b *ButtonBar) FocusFirst() {
	if len(b.buttons) > 0 {
		b.focused = 0
	}
}

// FocusLast focuses the last button.
func (b *ButtonBar) FocusLast() {
	if len(b.buttons) > 0 {
		b.focused = len(b.buttons) - 1
	}
}

// FocusNext moves focus forward. Returns false when focus runs off the end,
// leaving the bar blurred so the wizard can hand focus back to the step.
func (b *ButtonBar) FocusNext() bool {
	if b.focused < 0 || b.focused >= len(b.buttons)-1 {
		b.focused = -1
		return false
	}
	b.focused++
	return true
}

// FocusPrev moves focus backward. Returns false when focus runs off the front.
func (b *ButtonBar) FocusPrev() bool {
	if b.focused <= 0 {
		b.focused = -1
		return false
	}
	b.focused--
	return true
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

// FocusedButton returns the ID of the focused button, or ButtonNone.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return ButtonNone
	}
	return b.buttons[b.focused].ID
}

// Render renders the button bar centered within its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()

	var rendered []string
	for i, btn := range b.buttons {
		style := s.ButtonNormal
		if i == b.focused {
			style = s.ButtonFocused
		}
		rendered = append(rendered, style.MarginLeft(1).MarginRight(1).Render(btn.Label))
	}

	row := strings.Join(rendered, "")
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, row)
}

// backNextButtons builds the standard Back/Next pair. The first wizard step
// gets no Back button, and the final step's forward button reads Publish.
func backNextButtons(first, last bool) []Button {
	var buttons []Button
	if !first {
		buttons = append(buttons, Button{ID: ButtonBack, Label: "← Back"})
	}
	if last {
		buttons = append(buttons, Button{ID: ButtonSubmit, Label: "Publish"})
	} else {
		buttons = append(buttons, Button{ID: ButtonNext, Label: "Next →"})
	}
	return buttons
}
