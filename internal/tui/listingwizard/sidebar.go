package listingwizard

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/registry"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// groupTitles maps wizard phases to the labels shown in the progress sidebar.
var groupTitles = map[registry.Group]string{
	registry.GroupAboutPlace: "Tell us about your place",
	registry.GroupStandOut:   "Make it stand out",
	registry.GroupPublish:    "Finish and publish",
}

// renderSidebar renders the per-phase progress panel.
func renderSidebar(wiz *listing.Wizard, width int) string {
	t := theme.Current()
	reg := wiz.Registry()

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Bold(true).
		MarginBottom(1)

	groupStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	currentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Bold(true)
	pendingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	rows := []string{titleStyle.Render("Your listing")}

	for _, group := range registry.Groups() {
		r, ok := reg.GroupRange(group)
		if !ok {
			continue
		}

		done := 0
		for i := r.Start; i < r.End; i++ {
			if wiz.IsStepCompleted(i) {
				done++
			}
		}
		rows = append(rows, groupStyle.Render(fmt.Sprintf("%s  %d/%d", groupTitles[group], done, r.Len())))

		for i := r.Start; i < r.End; i++ {
			step, err := reg.GetStep(i)
			if err != nil {
				continue
			}
			label := fmt.Sprintf("%2d  %s", i+1, step.Title)
			switch {
			case i == wiz.CurrentStepIndex():
				rows = append(rows, currentStyle.Render("▸"+label))
			case wiz.IsStepCompleted(i):
				rows = append(rows, doneStyle.Render("✓"+label))
			default:
				rows = append(rows, pendingStyle.Render("·"+label))
			}
		}
		rows = append(rows, "")
	}

	rows = append(rows, pendingStyle.Render("alt+1-9  jump to step"))

	panel := lipgloss.JoinVertical(lipgloss.Left, rows...)

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderMuted)).
		Render(panel)
}
