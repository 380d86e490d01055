package listingwizard

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// NumbersStep collects bedrooms, bathrooms, and floor area.
type NumbersStep struct {
	bedrooms  textinput.Model
	bathrooms textinput.Model
	area      textinput.Model
	focused   int
	err       string
	width     int
	height    int
}

// NewNumbersStep creates the basic-info inputs, pre-filled from form data.
func NewNumbersStep(data listing.FormData) *NumbersStep {
	bedrooms := textinput.New()
	bedrooms.Placeholder = "0 for studio"
	bedrooms.CharLimit = 3
	bedrooms.SetValue(strconv.Itoa(data.Bedrooms))
	bedrooms.Focus()

	bathrooms := textinput.New()
	bathrooms.CharLimit = 3
	bathrooms.SetValue(strconv.Itoa(data.Bathrooms))

	area := textinput.New()
	area.Placeholder = "e.g. 65"
	area.CharLimit = 10
	if data.AreaSqm > 0 {
		area.SetValue(strconv.FormatFloat(data.AreaSqm, 'f', -1, 64))
	}

	return &NumbersStep{bedrooms: bedrooms, bathrooms: bathrooms, area: area}
}

func (s *NumbersStep) inputs() []*textinput.Model {
	return []*textinput.Model{&s.bedrooms, &s.bathrooms, &s.area}
}

func (s *NumbersStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *NumbersStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if s.focused == 2 {
				return s.Submit()
			}
			s.focusField(s.focused + 1)
			return nil
		case "tab", "down":
			if s.focused == 2 {
				if key.String() == "tab" {
					return func() tea.Msg { return TabExitForwardMsg{} }
				}
				return nil
			}
			s.focusField(s.focused + 1)
			return nil
		case "shift+tab", "up":
			if s.focused == 0 {
				if key.String() == "shift+tab" {
					return func() tea.Msg { return TabExitBackwardMsg{} }
				}
				return nil
			}
			s.focusField(s.focused - 1)
			return nil
		default:
			s.err = ""
		}
	}

	var cmd tea.Cmd
	in := s.inputs()[s.focused]
	*in, cmd = in.Update(msg)
	return cmd
}

func (s *NumbersStep) focusField(i int) {
	if i < 0 || i > 2 {
		return
	}
	s.inputs()[s.focused].Blur()
	s.focused = i
	s.inputs()[i].Focus()
}

func (s *NumbersStep) View() string {
	t := theme.Current()

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))

	rows := []string{
		lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)).
			MarginBottom(1).
			Render("Share some basics about your place:"),
		labelStyle.Render("Bedrooms"),
		s.bedrooms.View(),
		labelStyle.Render("Bathrooms"),
		s.bathrooms.View(),
		labelStyle.Render("Floor area (m²)"),
		s.area.View(),
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

func (s *NumbersStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *NumbersStep) Focus() {
	s.focusField(0)
}

func (s *NumbersStep) Blur() {
	s.inputs()[s.focused].Blur()
}

func (s *NumbersStep) parse() (bedrooms, bathrooms int, area float64, err error) {
	bedrooms, err = strconv.Atoi(strings.TrimSpace(s.bedrooms.Value()))
	if err != nil || bedrooms < 0 {
		return 0, 0, 0, fmt.Errorf("bedrooms must be zero or more")
	}
	bathrooms, err = strconv.Atoi(strings.TrimSpace(s.bathrooms.Value()))
	if err != nil || bathrooms < 0 {
		return 0, 0, 0, fmt.Errorf("bathrooms must be zero or more")
	}
	area, err = strconv.ParseFloat(strings.TrimSpace(s.area.Value()), 64)
	if err != nil || area <= 0 {
		return 0, 0, 0, fmt.Errorf("floor area must be greater than zero")
	}
	return bedrooms, bathrooms, area, nil
}

func (s *NumbersStep) Submit() tea.Cmd {
	bedrooms, bathrooms, area, err := s.parse()
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return submitCmd(listing.Patch{
		Bedrooms:  listing.Int(bedrooms),
		Bathrooms: listing.Int(bathrooms),
		AreaSqm:   listing.Float(area),
	})
}

func (s *NumbersStep) EditPatch() listing.Patch {
	bedrooms, bathrooms, area, err := s.parse()
	if err != nil {
		return listing.Patch{}
	}
	return listing.Patch{
		Bedrooms:  listing.Int(bedrooms),
		Bathrooms: listing.Int(bathrooms),
		AreaSqm:   listing.Float(area),
	}
}
