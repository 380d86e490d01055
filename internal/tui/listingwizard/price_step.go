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

// PriceStep collects the monthly rent, with an optional model-backed
// recommendation fetched on demand.
type PriceStep struct {
	input    textinput.Model
	currency string
	fetch    tea.Cmd // nil when no price client is wired
	fetching bool
	rec      *PriceFetchedMsg
	err      string
	width    int
	height   int
}

// NewPriceStep creates the price input, pre-filled from form data.
func NewPriceStep(data listing.FormData, currency string, fetch tea.Cmd) *PriceStep {
	ti := textinput.New()
	ti.Placeholder = "monthly rent, e.g. 2500"
	ti.CharLimit = 12
	if data.Price > 0 {
		ti.SetValue(strconv.FormatFloat(data.Price, 'f', -1, 64))
	}
	ti.Focus()

	return &PriceStep{input: ti, currency: currency, fetch: fetch}
}

func (s *PriceStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *PriceStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PriceFetchedMsg:
		s.fetching = false
		s.rec = &msg
		if msg.Rec.PredictedPrice > 0 {
			s.input.SetValue(strconv.FormatFloat(msg.Rec.PredictedPrice, 'f', -1, 64))
			s.err = ""
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s.Submit()
		case "ctrl+r":
			if s.fetch != nil && !s.fetching {
				s.fetching = true
				return s.fetch
			}
			return nil
		case "tab":
			return func() tea.Msg { return TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return TabExitBackwardMsg{} }
		default:
			s.err = ""
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *PriceStep) View() string {
	t := theme.Current()

	instruction := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(fmt.Sprintf("Set your monthly price (%s):", s.currency))

	rows := []string{instruction, s.input.View()}

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Info)).
		MarginTop(1)

	switch {
	case s.fetching:
		rows = append(rows, infoStyle.Render("Fetching recommendation…"))
	case s.rec != nil:
		rec := s.rec.Rec
		rows = append(rows, infoStyle.Render(fmt.Sprintf(
			"Suggested: %.0f %s (range %.0f – %.0f)",
			rec.PredictedPrice, rec.Currency, rec.Min, rec.Max)))
	}

	if s.fetch != nil {
		rows = append(rows, "", renderHintBar("ctrl+r", "suggest a price", "enter", "continue"))
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

func (s *PriceStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *PriceStep) Focus() {
	s.input.Focus()
}

func (s *PriceStep) Blur() {
	s.input.Blur()
}

func (s *PriceStep) parse() (float64, error) {
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return 0, fmt.Errorf("price is required")
	}
	price, err := strconv.ParseFloat(text, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("price must be a number greater than zero")
	}
	return price, nil
}

func (s *PriceStep) Submit() tea.Cmd {
	price, err := s.parse()
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return submitCmd(listing.Patch{Price: listing.Float(price)})
}

func (s *PriceStep) EditPatch() listing.Patch {
	price, err := s.parse()
	if err != nil {
		return listing.Patch{}
	}
	return listing.Patch{Price: listing.Float(price)}
}
