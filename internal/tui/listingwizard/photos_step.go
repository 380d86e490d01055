package listingwizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// PhotosStep manages the listing's photo URLs: an input to add and a
// removable list of what's been added.
type PhotosStep struct {
	input  textinput.Model
	photos []string
	cursor int // index into photos when list is focused
	inList bool
	err    string
	width  int
	height int
}

// NewPhotosStep creates the photo editor, pre-filled from form data.
func NewPhotosStep(data listing.FormData) *PhotosStep {
	ti := textinput.New()
	ti.Placeholder = "https://…/photo.jpg"
	ti.CharLimit = 500
	ti.Focus()

	photos := make([]string, len(data.Images))
	copy(photos, data.Images)

	return &PhotosStep{input: ti, photos: photos}
}

func (s *PhotosStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *PhotosStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if s.inList {
				return s.Submit()
			}
			url := strings.TrimSpace(s.input.Value())
			if url == "" {
				return s.Submit()
			}
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				s.err = "Photo must be an http(s) URL"
				return nil
			}
			s.photos = append(s.photos, url)
			s.input.SetValue("")
			s.err = ""
			return nil
		case "down":
			if !s.inList && len(s.photos) > 0 {
				s.inList = true
				s.cursor = 0
				s.input.Blur()
			} else if s.inList && s.cursor < len(s.photos)-1 {
				s.cursor++
			}
			return nil
		case "up":
			if s.inList {
				if s.cursor > 0 {
					s.cursor--
				} else {
					s.inList = false
					s.input.Focus()
				}
			}
			return nil
		case "d", "delete", "backspace":
			if s.inList && len(s.photos) > 0 {
				s.photos = append(s.photos[:s.cursor], s.photos[s.cursor+1:]...)
				if s.cursor >= len(s.photos) {
					s.cursor = len(s.photos) - 1
				}
				if len(s.photos) == 0 {
					s.inList = false
					s.input.Focus()
				}
				return nil
			}
			if key.String() == "d" && !s.inList {
				break // let the input receive the character
			}
		case "tab":
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return TabExitBackwardMsg{} }
		}
	}

	if s.inList {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *PhotosStep) View() string {
	t := theme.Current()

	rows := []string{
		lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)).
			MarginBottom(1).
			Render("Add photos of your place (URL per line, enter to add):"),
		s.input.View(),
	}

	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Bold(true)

	if len(s.photos) > 0 {
		rows = append(rows, "")
		for i, url := range s.photos {
			if s.inList && i == s.cursor {
				rows = append(rows, selectedStyle.Render("▸ "+url))
			} else {
				rows = append(rows, itemStyle.Render("  "+url))
			}
		}
		rows = append(rows, "")
		rows = append(rows, renderHintBar("↓", "select photo", "d", "remove", "enter", "continue"))
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

func (s *PhotosStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *PhotosStep) Focus() {
	s.inList = false
	s.input.Focus()
}

func (s *PhotosStep) Blur() {
	s.input.Blur()
}

func (s *PhotosStep) Submit() tea.Cmd {
	if len(s.photos) == 0 {
		s.err = "Add at least one photo"
		return nil
	}
	s.err = ""
	return submitCmd(listing.Patch{Images: listing.Strings(s.photos...)})
}

func (s *PhotosStep) EditPatch() listing.Patch {
	if len(s.photos) == 0 {
		return listing.Patch{}
	}
	return listing.Patch{Images: listing.Strings(s.photos...)}
}
