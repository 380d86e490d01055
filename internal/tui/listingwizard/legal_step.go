package listingwizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// Document options a landlord can attach to a listing.
var legalDocumentOptions = []string{
	"Ownership certificate",
	"Tenancy agreement",
	"Recent utility bill",
}

// legalRow kinds.
const (
	rowDocument = iota
	rowMaintenance
	rowLandlord
)

type legalRow struct {
	kind  int
	label string
	value string // option value for radio rows
}

// LegalStep collects legal documents, maintenance terms, and landlord type.
type LegalStep struct {
	rows        []legalRow
	cursor      int
	docs        map[string]bool
	maintenance string // "yes", "no", or ""
	landlord    string // "individual", "company", "partnership", or ""
	err         string
	width       int
	height      int
}

// NewLegalStep creates the legal questionnaire, pre-filled from form data.
func NewLegalStep(data listing.FormData) *LegalStep {
	rows := make([]legalRow, 0, len(legalDocumentOptions)+5)
	for _, doc := range legalDocumentOptions {
		rows = append(rows, legalRow{kind: rowDocument, label: doc, value: doc})
	}
	rows = append(rows,
		legalRow{kind: rowMaintenance, label: "Maintenance included in rent", value: "yes"},
		legalRow{kind: rowMaintenance, label: "Tenant pays maintenance", value: "no"},
		legalRow{kind: rowLandlord, label: "I am the owner", value: "individual"},
		legalRow{kind: rowLandlord, label: "I represent a company", value: "company"},
		legalRow{kind: rowLandlord, label: "We own it as a partnership", value: "partnership"},
	)

	docs := make(map[string]bool)
	for _, doc := range data.LegalDocuments {
		docs[doc] = true
	}

	return &LegalStep{
		rows:        rows,
		docs:        docs,
		maintenance: data.MaintenanceIncluded,
		landlord:    data.LandlordType,
	}
}

func (s *LegalStep) Init() tea.Cmd {
	return nil
}

func (s *LegalStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.rows)-1 {
				s.cursor++
			}
		case " ":
			s.toggle()
			s.err = ""
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

func (s *LegalStep) toggle() {
	row := s.rows[s.cursor]
	switch row.kind {
	case rowDocument:
		s.docs[row.value] = !s.docs[row.value]
	case rowMaintenance:
		s.maintenance = row.value
	case rowLandlord:
		s.landlord = row.value
	}
}

func (s *LegalStep) View() string {
	t := theme.Current()

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Bold(true)

	var rows []string
	lastKind := -1
	for i, row := range s.rows {
		if row.kind != lastKind {
			if lastKind != -1 {
				rows = append(rows, "")
			}
			switch row.kind {
			case rowDocument:
				rows = append(rows, headerStyle.Render("Which documents can you provide?"))
			case rowMaintenance:
				rows = append(rows, headerStyle.Render("Who pays for maintenance?"))
			case rowLandlord:
				rows = append(rows, headerStyle.Render("Who is listing this place?"))
			}
			lastKind = row.kind
		}

		var marker string
		switch row.kind {
		case rowDocument:
			marker = "[ ]"
			if s.docs[row.value] {
				marker = "[x]"
			}
		case rowMaintenance:
			marker = "( )"
			if s.maintenance == row.value {
				marker = "(•)"
			}
		case rowLandlord:
			marker = "( )"
			if s.landlord == row.value {
				marker = "(•)"
			}
		}

		line := marker + " " + row.label
		if i == s.cursor {
			rows = append(rows, selectedStyle.Render("▸ "+line))
		} else {
			rows = append(rows, itemStyle.Render("  "+line))
		}
	}

	rows = append(rows, "", renderHintBar("↑↓", "navigate", "space", "toggle", "enter", "continue"))

	if s.err != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true).
			MarginTop(1)
		rows = append(rows, errStyle.Render("✗ "+s.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *LegalStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *LegalStep) Focus() {}
func (s *LegalStep) Blur()  {}

func (s *LegalStep) Submit() tea.Cmd {
	if s.maintenance == "" || s.landlord == "" {
		s.err = "Please answer the maintenance and landlord questions"
		return nil
	}
	s.err = ""
	return submitCmd(s.EditPatch())
}

func (s *LegalStep) EditPatch() listing.Patch {
	var docs []string
	for _, opt := range legalDocumentOptions {
		if s.docs[opt] {
			docs = append(docs, opt)
		}
	}

	patch := listing.Patch{LegalDocuments: &docs}
	if s.maintenance != "" {
		patch.MaintenanceIncluded = listing.String(s.maintenance)
	}
	if s.landlord != "" {
		patch.LandlordType = listing.String(s.landlord)
	}
	return patch
}
