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

// CoordsStep collects the property's latitude and longitude.
type CoordsStep struct {
	lat     textinput.Model
	lng     textinput.Model
	focused int // 0 = lat, 1 = lng
	err     string
	width   int
	height  int
}

// NewCoordsStep creates the coordinate inputs, pre-filled from form data.
func NewCoordsStep(data listing.FormData) *CoordsStep {
	lat := textinput.New()
	lat.Placeholder = "e.g. 3.139"
	lat.CharLimit = 20
	if data.Latitude != nil {
		lat.SetValue(strconv.FormatFloat(*data.Latitude, 'f', -1, 64))
	}
	lat.Focus()

	lng := textinput.New()
	lng.Placeholder = "e.g. 101.6869"
	lng.CharLimit = 20
	if data.Longitude != nil {
		lng.SetValue(strconv.FormatFloat(*data.Longitude, 'f', -1, 64))
	}

	return &CoordsStep{lat: lat, lng: lng}
}

func (s *CoordsStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CoordsStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if s.focused == 0 {
				s.focusField(1)
				return nil
			}
			return s.Submit()
		case "tab", "down":
			if s.focused == 1 {
				if key.String() == "tab" {
					return func() tea.Msg { return TabExitForwardMsg{} }
				}
				return nil
			}
			s.focusField(1)
			return nil
		case "shift+tab", "up":
			if s.focused == 0 {
				if key.String() == "shift+tab" {
					return func() tea.Msg { return TabExitBackwardMsg{} }
				}
				return nil
			}
			s.focusField(0)
			return nil
		default:
			s.err = ""
		}
	}

	var cmd tea.Cmd
	if s.focused == 0 {
		s.lat, cmd = s.lat.Update(msg)
	} else {
		s.lng, cmd = s.lng.Update(msg)
	}
	return cmd
}

func (s *CoordsStep) focusField(i int) {
	s.focused = i
	if i == 0 {
		s.lat.Focus()
		s.lng.Blur()
	} else {
		s.lat.Blur()
		s.lng.Focus()
	}
}

func (s *CoordsStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render("Where is your place? Enter the map coordinates:")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))

	rows := []string{
		instruction,
		labelStyle.Render("Latitude"),
		s.lat.View(),
		labelStyle.Render("Longitude"),
		s.lng.View(),
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

func (s *CoordsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *CoordsStep) Focus() {
	s.focusField(0)
}

func (s *CoordsStep) Blur() {
	s.lat.Blur()
	s.lng.Blur()
}

func (s *CoordsStep) parse() (lat, lng float64, err error) {
	latText := strings.TrimSpace(s.lat.Value())
	lngText := strings.TrimSpace(s.lng.Value())
	if latText == "" || lngText == "" {
		return 0, 0, fmt.Errorf("both coordinates are required")
	}
	lat, err = strconv.ParseFloat(latText, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude must be a number")
	}
	lng, err = strconv.ParseFloat(lngText, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude must be a number")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range")
	}
	return lat, lng, nil
}

func (s *CoordsStep) Submit() tea.Cmd {
	lat, lng, err := s.parse()
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return submitCmd(listing.Patch{
		Latitude:  listing.Float(lat),
		Longitude: listing.Float(lng),
	})
}

func (s *CoordsStep) EditPatch() listing.Patch {
	lat, lng, err := s.parse()
	if err != nil {
		return listing.Patch{}
	}
	return listing.Patch{
		Latitude:  listing.Float(lat),
		Longitude: listing.Float(lng),
	}
}
