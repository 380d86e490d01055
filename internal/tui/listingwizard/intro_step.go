package listingwizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// introCopy holds the body text for each transition screen.
var introCopy = map[string]string{
	"intro": `It's easy to list your place on Rentverse.

1. Tell us about your place
   Share basic details: where it is, what type it is, how many
   rooms it has.

2. Make it stand out
   Add photos, a title, and a description.

3. Finish and publish
   Answer a few legal questions and set your price.`,

	"step-one-intro": `Tell us about your place.

In this part we'll ask which type of property you have and where
it is located. Then share some basics: how many bedrooms and
bathrooms, and the floor area.`,

	"step-two-intro": `Make it stand out.

In this part you'll add photos of your place plus a title and a
description. We'll help you along the way.`,

	"step-three-intro": `Finish and publish.

Finally, you'll answer a few legal questions, set a monthly price,
and publish your listing.`,
}

// IntroStep renders a static transition screen. Enter continues.
type IntroStep struct {
	stepID string
	width  int
	height int
}

// NewIntroStep creates an intro screen for the given step id.
func NewIntroStep(stepID string) *IntroStep {
	return &IntroStep{stepID: stepID}
}

func (s *IntroStep) Init() tea.Cmd {
	return nil
}

func (s *IntroStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
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

func (s *IntroStep) View() string {
	t := theme.Current()

	body := introCopy[s.stepID]
	bodyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Width(60)

	return bodyStyle.Render(body)
}

func (s *IntroStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *IntroStep) Focus() {}
func (s *IntroStep) Blur()  {}

// Submit continues to the next step; intro screens carry no form data.
func (s *IntroStep) Submit() tea.Cmd {
	return submitCmd(listing.Patch{})
}

func (s *IntroStep) EditPatch() listing.Patch {
	return listing.Patch{}
}
