package listingwizard

import (
	tea "charm.land/bubbletea/v2"

	"github.com/rentverse/lettr/internal/listing"
)

// stepComponent is the contract between the wizard shell and each step view.
// Submit validates the step's own inputs and emits StepSubmittedMsg on
// success; EditPatch returns the current values without validating, so the
// wizard can keep edits when the user navigates backward.
type stepComponent interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Focus()
	Blur()
	Submit() tea.Cmd
	EditPatch() listing.Patch
}

func submitCmd(patch listing.Patch) tea.Cmd {
	return func() tea.Msg {
		return StepSubmittedMsg{Patch: patch}
	}
}
