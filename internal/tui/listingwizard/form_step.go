package listingwizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// Field kinds within a form step.
const (
	fieldText = iota
	fieldToggle
)

// formField is one labeled input inside a FormStep.
type formField struct {
	label    string
	kind     int
	required bool
	input    textinput.Model
	toggle   bool
	// patch writes the field's value into the outgoing patch
	patch func(value string, on bool, p *listing.Patch)
}

func textField(label, placeholder, value string, required bool, patch func(string, *listing.Patch)) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.SetValue(value)
	return formField{
		label:    label,
		kind:     fieldText,
		required: required,
		input:    ti,
		patch: func(v string, _ bool, p *listing.Patch) {
			patch(strings.TrimSpace(v), p)
		},
	}
}

func toggleField(label string, on bool, patch func(bool, *listing.Patch)) formField {
	return formField{
		label:  label,
		kind:   fieldToggle,
		toggle: on,
		patch: func(_ string, v bool, p *listing.Patch) {
			patch(v, p)
		},
	}
}

// FormStep renders a vertical form of labeled fields. Tab and arrow keys
// cycle fields; Enter on the last field submits.
type FormStep struct {
	fields  []formField
	focused int
	err     string
	width   int
	height  int
}

// NewLocationDetailsStep builds the address form.
func NewLocationDetailsStep(data listing.FormData) *FormStep {
	fields := []formField{
		textField("State *", "e.g. Kuala Lumpur", data.State, true,
			func(v string, p *listing.Patch) { p.State = listing.String(v) }),
		textField("District *", "e.g. Bukit Bintang", data.District, true,
			func(v string, p *listing.Patch) { p.District = listing.String(v) }),
		textField("City", "e.g. Kuala Lumpur", data.City, false,
			func(v string, p *listing.Patch) { p.City = listing.String(v) }),
		textField("Subdistrict", "", data.Subdistrict, false,
			func(v string, p *listing.Patch) { p.Subdistrict = listing.String(v) }),
		textField("Street address", "e.g. Jalan Alor", data.StreetAddress, false,
			func(v string, p *listing.Patch) { p.StreetAddress = listing.String(v) }),
		textField("House / unit number", "e.g. 12A", data.HouseNumber, false,
			func(v string, p *listing.Patch) { p.HouseNumber = listing.String(v) }),
		textField("Zip code", "e.g. 50000", data.ZipCode, false,
			func(v string, p *listing.Patch) { p.ZipCode = listing.String(v) }),
		textField("Full address", "Shown to tenants on the listing page", data.Address, false,
			func(v string, p *listing.Patch) { p.Address = listing.String(v) }),
	}
	return newFormStep(fields)
}

// NewPropertyDetailsStep builds the amenities and furnishing form.
func NewPropertyDetailsStep(data listing.FormData) *FormStep {
	fields := []formField{
		textField("Amenities", "comma separated, e.g. pool, gym, parking",
			strings.Join(data.Amenities, ", "), false,
			func(v string, p *listing.Patch) {
				var amenities []string
				for _, a := range strings.Split(v, ",") {
					if a = strings.TrimSpace(a); a != "" {
						amenities = append(amenities, a)
					}
				}
				p.Amenities = &amenities
			}),
		toggleField("Furnished", data.Furnished,
			func(v bool, p *listing.Patch) { p.Furnished = listing.Bool(v) }),
	}
	return newFormStep(fields)
}

func newFormStep(fields []formField) *FormStep {
	s := &FormStep{fields: fields}
	if len(s.fields) > 0 && s.fields[0].kind == fieldText {
		s.fields[0].input.Focus()
	}
	return s
}

func (s *FormStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *FormStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if s.focused == len(s.fields)-1 {
				return s.Submit()
			}
			s.focusField(s.focused + 1)
			return nil
		case "tab", "down":
			if s.focused == len(s.fields)-1 {
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
		case " ":
			if s.fields[s.focused].kind == fieldToggle {
				s.fields[s.focused].toggle = !s.fields[s.focused].toggle
				return nil
			}
		default:
			s.err = ""
		}
	}

	if s.fields[s.focused].kind == fieldText {
		var cmd tea.Cmd
		s.fields[s.focused].input, cmd = s.fields[s.focused].input.Update(msg)
		return cmd
	}
	return nil
}

func (s *FormStep) focusField(i int) {
	if i < 0 || i >= len(s.fields) {
		return
	}
	if s.fields[s.focused].kind == fieldText {
		s.fields[s.focused].input.Blur()
	}
	s.focused = i
	if s.fields[i].kind == fieldText {
		s.fields[i].input.Focus()
	}
}

func (s *FormStep) View() string {
	t := theme.Current()

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	focusedLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Bold(true)

	rows := make([]string, 0, len(s.fields)*2)
	for i := range s.fields {
		f := &s.fields[i]
		style := labelStyle
		if i == s.focused {
			style = focusedLabelStyle
		}
		rows = append(rows, style.Render(f.label))
		switch f.kind {
		case fieldText:
			rows = append(rows, f.input.View())
		case fieldToggle:
			box := "[ ] no"
			if f.toggle {
				box = "[x] yes"
			}
			rows = append(rows, labelStyle.Render("  "+box+"  (space to toggle)"))
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

func (s *FormStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *FormStep) Focus() {
	s.focusField(0)
}

// FocusLast focuses the final field, for Shift+Tab from the button bar.
func (s *FormStep) FocusLast() {
	s.focusField(len(s.fields) - 1)
}

func (s *FormStep) Blur() {
	if s.fields[s.focused].kind == fieldText {
		s.fields[s.focused].input.Blur()
	}
}

func (s *FormStep) Submit() tea.Cmd {
	for i := range s.fields {
		f := &s.fields[i]
		if f.required && f.kind == fieldText && strings.TrimSpace(f.input.Value()) == "" {
			s.err = f.label[:len(f.label)-2] + " is required"
			s.focusField(i)
			return nil
		}
	}
	s.err = ""
	return submitCmd(s.EditPatch())
}

func (s *FormStep) EditPatch() listing.Patch {
	var patch listing.Patch
	for i := range s.fields {
		f := &s.fields[i]
		f.patch(f.input.Value(), f.toggle, &patch)
	}
	return patch
}
