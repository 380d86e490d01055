package listingwizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/rentverse/lettr/internal/api"
	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/logger"
	"github.com/rentverse/lettr/internal/registry"
	"github.com/rentverse/lettr/internal/state"
	"github.com/rentverse/lettr/internal/tui/theme"
)

// Modal layout constants
const (
	modalWidth       = 70
	sidebarWidth     = 36
	minSidebarScreen = 110 // terminal columns needed before the sidebar shows
)

// Recorder persists wizard activity so a draft can be resumed later.
// All methods are best-effort: persistence failures are logged, never
// surfaced as wizard errors.
type Recorder interface {
	RecordPatch(ctx context.Context, draft string, patch listing.Patch) error
	RecordPosition(ctx context.Context, draft string, index int) error
	RecordCompleted(ctx context.Context, draft string, index int) error
	RecordSubmitted(ctx context.Context, draft, propertyID string) error
}

// PriceClient fetches rent recommendations for the pricing step.
type PriceClient interface {
	RecommendPrice(ctx context.Context, criteria api.PriceCriteria) api.PriceRecommendation
}

// Options carries the wizard's collaborators.
type Options struct {
	Wizard    *listing.Wizard
	Submitter *listing.Submitter
	Prices    PriceClient // optional, pricing step works without it
	Recorder  Recorder    // optional, wizard runs unpersisted without it
	DraftName string
	UI        *state.UIState // optional
	DataDir   string
	Currency  string
}

// WizardModel is the main BubbleTea model for the listing wizard.
type WizardModel struct {
	opts      Options
	wiz       *listing.Wizard
	ctx       context.Context
	cancelled bool
	width     int
	height    int

	// Current step component, rebuilt on navigation
	step      stepComponent
	stepError string

	// Button bar with focus tracking, cached per step index
	buttonBar     *ButtonBar
	buttonBars    map[int]*ButtonBar
	buttonFocused bool

	// Overlays
	exitConfirm   *ConfirmationModal
	submitConfirm *ConfirmationModal

	// Submission state
	submitting      bool
	submitError     string
	showSubmitError bool
	published       *listing.PropertyRecord

	sidebarVisible bool
}

// Run is the entry point for the listing wizard. It creates a standalone
// BubbleTea program, runs it to completion, and returns the published record
// (nil when the user exited before publishing).
func Run(opts Options) (*listing.PropertyRecord, error) {
	m := NewModel(opts)

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wm, ok := finalModel.(*WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return wm.published, nil
}

// NewModel creates the wizard model without starting a program. Split from
// Run so tests can drive Update directly.
func NewModel(opts Options) *WizardModel {
	sidebarVisible := true
	if opts.UI != nil {
		sidebarVisible = opts.UI.Sidebar.Visible
	}
	return &WizardModel{
		opts:           opts,
		wiz:            opts.Wizard,
		ctx:            context.Background(),
		buttonBars:     make(map[int]*ButtonBar),
		exitConfirm:    NewConfirmationModal("Exit wizard?", "Your draft is saved and can be resumed with 'lettr new'."),
		submitConfirm:  NewConfirmationModal("Publish listing?", "Your listing will be submitted to Rentverse for review."),
		sidebarVisible: sidebarVisible,
	}
}

// Published returns the record created by a successful submission, if any.
func (m *WizardModel) Published() *listing.PropertyRecord {
	return m.published
}

// Cancelled reports whether the user exited before publishing.
func (m *WizardModel) Cancelled() bool {
	return m.cancelled
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Completion screen: any of these keys exits
		if m.published != nil {
			switch msg.String() {
			case "enter", "q", "esc", "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		// Submission error modal: Y retries, N dismisses
		if m.showSubmitError {
			switch msg.String() {
			case "y", "Y":
				return m, func() tea.Msg { return RetrySubmitMsg{} }
			case "n", "N", "esc":
				m.showSubmitError = false
				m.submitError = ""
				return m, nil
			}
			return m, nil
		}

		if m.submitting {
			// Ignore input while the request is in flight
			return m, nil
		}

		if m.exitConfirm.IsVisible() {
			switch msg.String() {
			case "y", "Y":
				m.cancelled = true
				return m, tea.Quit
			case "n", "N", "esc":
				m.exitConfirm.Hide()
				return m, nil
			}
			return m, nil
		}

		if m.submitConfirm.IsVisible() {
			switch msg.String() {
			case "y", "Y":
				m.submitConfirm.Hide()
				return m.startSubmit()
			case "n", "N", "esc":
				m.submitConfirm.Hide()
				return m, nil
			}
			return m, nil
		}

		// Button-focused keyboard input
		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.focusStepContent(false)
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.focusStepContent(true)
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		// Global keybindings
		switch msg.String() {
		case "ctrl+c":
			return m.requestExit()
		case "esc":
			if m.wiz.CurrentStepIndex() == 0 {
				return m.requestExit()
			}
			return m.goBack()
		case "ctrl+s":
			m.sidebarVisible = !m.sidebarVisible
			m.persistUIState()
			return m, nil
		}

		if idx, ok := jumpIndex(msg.String()); ok {
			return m.jumpToStep(idx)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.step != nil {
			m.step.SetSize(m.contentSize())
		}
		return m, nil

	case StepSubmittedMsg:
		return m.applyStepSubmit(msg.Patch)

	case PriceFetchedMsg:
		// A fetched recommendation is a form edit like any other: merge it
		// into the wizard data, then let the step display and prefill it.
		if msg.Rec.PredictedPrice > 0 {
			patch := listing.Patch{Price: listing.Float(msg.Rec.PredictedPrice)}
			m.wiz.UpdateData(patch)
			m.recordPatch(patch)
		}
		if m.step != nil {
			return m, m.step.Update(msg)
		}
		return m, nil

	case RetrySubmitMsg:
		m.showSubmitError = false
		m.submitError = ""
		return m.startSubmit()

	case SubmitResultMsg:
		return m.finishSubmit(msg)

	case TabExitForwardMsg:
		m.focusButtons(false)
		return m, nil

	case TabExitBackwardMsg:
		m.focusButtons(true)
		return m, nil
	}

	// Forward everything else to the current step
	if m.step != nil {
		return m, m.step.Update(msg)
	}
	return m, nil
}

// requestExit asks for confirmation when there are unsaved-looking edits,
// otherwise quits immediately.
func (m *WizardModel) requestExit() (tea.Model, tea.Cmd) {
	if m.wiz.IsDirty() {
		m.exitConfirm.Show()
		return m, nil
	}
	m.cancelled = true
	return m, tea.Quit
}

// applyStepSubmit merges a step's patch and advances the wizard.
func (m *WizardModel) applyStepSubmit(patch listing.Patch) (tea.Model, tea.Cmd) {
	m.wiz.UpdateData(patch)
	m.recordPatch(patch)

	idx := m.wiz.CurrentStepIndex()
	if m.wiz.NextStep() {
		m.stepError = ""
		m.recordStep(idx, m.wiz.CurrentStepIndex())
		return m, m.initCurrentStep()
	}

	// NextStep refused: either validation failed, or this is the final step
	// and the wizard is ready for submission.
	if m.wiz.IsLastStep() && m.wiz.ValidateCurrentStep() {
		m.recordStep(idx, idx)
		m.submitConfirm.Show()
		return m, nil
	}

	step := m.wiz.CurrentStep()
	m.stepError = listing.MessageFor(step.ID)
	return m, nil
}

// jumpIndex maps alt+1 through alt+9 to a step index.
func jumpIndex(key string) (int, bool) {
	digit, ok := strings.CutPrefix(key, "alt+")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digit)
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n - 1, true
}

// jumpToStep revisits an already-unlocked step from the progress tracker,
// keeping in-progress edits the same way goBack does. Locked steps are
// silently ignored.
func (m *WizardModel) jumpToStep(index int) (tea.Model, tea.Cmd) {
	if index == m.wiz.CurrentStepIndex() || !m.wiz.CanAccessStep(index) {
		return m, nil
	}
	if m.step != nil {
		if patch := m.step.EditPatch(); !patch.IsZero() {
			m.wiz.UpdateData(patch)
			m.recordPatch(patch)
		}
	}
	m.wiz.GoToStep(index)
	m.stepError = ""
	m.recordPosition(index)
	return m, m.initCurrentStep()
}

// goBack persists in-progress edits and moves to the previous step.
func (m *WizardModel) goBack() (tea.Model, tea.Cmd) {
	if m.step != nil {
		if patch := m.step.EditPatch(); !patch.IsZero() {
			m.wiz.UpdateData(patch)
			m.recordPatch(patch)
		}
	}
	if !m.wiz.PreviousStep() {
		return m, nil
	}
	m.stepError = ""
	m.recordPosition(m.wiz.CurrentStepIndex())
	return m, m.initCurrentStep()
}

// startSubmit kicks off the API submission in a background command.
func (m *WizardModel) startSubmit() (tea.Model, tea.Cmd) {
	m.submitting = true
	sub := m.opts.Submitter
	ctx := m.ctx
	return m, func() tea.Msg {
		record, err := sub.Submit(ctx)
		return SubmitResultMsg{Record: record, Err: err}
	}
}

// finishSubmit handles the submission outcome.
func (m *WizardModel) finishSubmit(msg SubmitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	if msg.Err != nil {
		logger.Error("Listing submission failed: %v", msg.Err)
		switch {
		case errors.Is(msg.Err, listing.ErrNotAuthenticated):
			m.submitError = "You are not logged in. Run 'lettr doctor' to check your token."
		case errors.Is(msg.Err, listing.ErrSubmitInFlight):
			m.submitError = "A submission is already in progress."
		default:
			m.submitError = msg.Err.Error()
		}
		m.showSubmitError = true
		return m, nil
	}

	m.published = msg.Record
	if m.opts.Recorder != nil && msg.Record != nil {
		if err := m.opts.Recorder.RecordSubmitted(m.ctx, m.opts.DraftName, msg.Record.ID); err != nil {
			logger.Warn("Failed to record submission: %v", err)
		}
	}
	return m, nil
}

// initCurrentStep builds the component for the wizard's current step.
func (m *WizardModel) initCurrentStep() tea.Cmd {
	def := m.wiz.CurrentStep()
	data := m.wiz.Data()

	switch def.Component {
	case registry.ComponentIntro:
		m.step = NewIntroStep(def.ID)
	case registry.ComponentSelect:
		m.step = NewSelectStep(data)
	case registry.ComponentCoords:
		m.step = NewCoordsStep(data)
	case registry.ComponentForm:
		if def.ID == "property-details" {
			m.step = NewPropertyDetailsStep(data)
		} else {
			m.step = NewLocationDetailsStep(data)
		}
	case registry.ComponentNumbers:
		m.step = NewNumbersStep(data)
	case registry.ComponentPhotos:
		m.step = NewPhotosStep(data)
	case registry.ComponentText:
		m.step = NewTextStep(data)
	case registry.ComponentTextarea:
		m.step = NewTextareaStep(data)
	case registry.ComponentLegal:
		m.step = NewLegalStep(data)
	case registry.ComponentPrice:
		m.step = NewPriceStep(data, m.opts.Currency, m.fetchPriceCmd())
	default:
		m.step = NewIntroStep(def.ID)
	}

	m.buttonFocused = false
	m.buttonBar = nil
	m.step.SetSize(m.contentSize())
	return m.step.Init()
}

// fetchPriceCmd builds the recommendation command for the pricing step, or
// nil when no price client is wired.
func (m *WizardModel) fetchPriceCmd() tea.Cmd {
	if m.opts.Prices == nil {
		return nil
	}
	prices := m.opts.Prices
	ctx := m.ctx
	data := m.wiz.Data()
	return func() tea.Msg {
		furnished := "No"
		if data.Furnished {
			furnished = "Yes"
		}
		location := data.City
		if location == "" {
			location = data.State
		}
		rec := prices.RecommendPrice(ctx, api.PriceCriteria{
			Area:         data.AreaSqm,
			Bathrooms:    data.Bathrooms,
			Bedrooms:     data.Bedrooms,
			Furnished:    furnished,
			Location:     location,
			PropertyType: data.PropertyType,
		})
		return PriceFetchedMsg{Rec: rec}
	}
}

// focusButtons moves keyboard focus to the button bar.
func (m *WizardModel) focusButtons(fromEnd bool) {
	m.buttonFocused = true
	if m.step != nil {
		m.step.Blur()
	}
	m.ensureButtonBar()
	if fromEnd {
		m.buttonBar.FocusLast()
	} else {
		m.buttonBar.FocusFirst()
	}
}

// focusStepContent returns keyboard focus to the step's inputs.
func (m *WizardModel) focusStepContent(last bool) {
	if m.buttonBar != nil {
		m.buttonBar.Blur()
	}
	if m.step == nil {
		return
	}
	if last {
		if f, ok := m.step.(interface{ FocusLast() }); ok {
			f.FocusLast()
			return
		}
	}
	m.step.Focus()
}

// ensureButtonBar creates or reuses the button bar for the current step.
func (m *WizardModel) ensureButtonBar() {
	idx := m.wiz.CurrentStepIndex()
	if bar, ok := m.buttonBars[idx]; ok {
		m.buttonBar = bar
		return
	}

	bar := NewButtonBar(backNextButtons(idx == 0, m.wiz.IsLastStep()))
	m.buttonBars[idx] = bar
	m.buttonBar = bar
}

// activateButton handles button activation.
func (m *WizardModel) activateButton(id ButtonID) (tea.Model, tea.Cmd) {
	switch id {
	case ButtonBack:
		return m.goBack()
	case ButtonNext, ButtonSubmit:
		if m.step != nil {
			return m, m.step.Submit()
		}
	}
	return m, nil
}

// recordPatch persists a form edit, best-effort.
func (m *WizardModel) recordPatch(patch listing.Patch) {
	if m.opts.Recorder == nil || patch.IsZero() {
		return
	}
	if err := m.opts.Recorder.RecordPatch(m.ctx, m.opts.DraftName, patch); err != nil {
		logger.Warn("Failed to record draft edit: %v", err)
	}
}

// recordStep persists a completed step and the new position, best-effort.
func (m *WizardModel) recordStep(completed, position int) {
	if m.opts.Recorder == nil {
		return
	}
	if err := m.opts.Recorder.RecordCompleted(m.ctx, m.opts.DraftName, completed); err != nil {
		logger.Warn("Failed to record step completion: %v", err)
	}
	if err := m.opts.Recorder.RecordPosition(m.ctx, m.opts.DraftName, position); err != nil {
		logger.Warn("Failed to record position: %v", err)
	}
}

// recordPosition persists the new position, best-effort.
func (m *WizardModel) recordPosition(position int) {
	if m.opts.Recorder == nil {
		return
	}
	if err := m.opts.Recorder.RecordPosition(m.ctx, m.opts.DraftName, position); err != nil {
		logger.Warn("Failed to record position: %v", err)
	}
}

// persistUIState saves sidebar visibility, best-effort.
func (m *WizardModel) persistUIState() {
	if m.opts.UI == nil || m.opts.DataDir == "" {
		return
	}
	m.opts.UI.Sidebar.Visible = m.sidebarVisible
	if err := state.Save(m.opts.DataDir, m.opts.UI); err != nil {
		logger.Warn("Failed to save UI state: %v", err)
	}
}

// contentSize returns the usable dimensions inside the modal.
func (m *WizardModel) contentSize() (width, height int) {
	width = modalWidth - 6
	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	height -= 10
	if height < 10 {
		height = 10
	}
	return width, height
}

// View renders the wizard.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderContent()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderContent picks the overlay or the main step view.
func (m *WizardModel) renderContent() string {
	if m.published != nil {
		return m.renderCompletion()
	}
	if m.showSubmitError {
		return m.renderSubmitError()
	}
	if m.exitConfirm.IsVisible() {
		return m.exitConfirm.Render()
	}
	if m.submitConfirm.IsVisible() {
		return m.submitConfirm.Render()
	}

	main := m.renderStep()
	if m.sidebarVisible && m.width >= minSidebarScreen {
		return lipgloss.JoinHorizontal(lipgloss.Top, renderSidebar(m.wiz, sidebarWidth), " ", main)
	}
	return main
}

// renderStep renders the current step inside the modal frame.
func (m *WizardModel) renderStep() string {
	t := theme.Current()

	def := m.wiz.CurrentStep()
	header := fmt.Sprintf("Step %d of %d: %s",
		m.wiz.CurrentStepIndex()+1, m.wiz.Registry().StepCount(), def.Title)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1)

	var stepContent string
	if m.step != nil {
		stepContent = m.step.View()
	}

	m.ensureButtonBar()
	buttons := m.buttonBar.Render()

	parts := []string{titleStyle.Render(header), stepContent, ""}

	if m.submitting {
		parts = append(parts, theme.Current().S().Muted.Render("Publishing…"), "")
	}

	if m.stepError != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true)
		parts = append(parts, errStyle.Render("✗ "+m.stepError), "")
	}

	parts = append(parts, buttons, "",
		renderHintBar("tab", "buttons", "esc", "back", "ctrl+s", "progress", "ctrl+c", "exit"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault)).
		Render(content)
}

// renderCompletion renders the success screen after publishing.
func (m *WizardModel) renderCompletion() string {
	t := theme.Current()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Success)).
		MarginBottom(1).
		Render("✓ Listing published")

	bodyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	body := bodyStyle.Render(fmt.Sprintf(
		"%s\n\nListing code: %s\nMonthly price: %.0f\n\nYour listing is now pending review.",
		m.published.Title, m.published.Code, m.published.Price))

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		MarginTop(1).
		Render("Press Enter to exit")

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, hint)

	return lipgloss.NewStyle().
		Width(modalWidth).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Success)).
		Render(content)
}

// renderSubmitError renders the submission failure modal with retry/cancel.
func (m *WizardModel) renderSubmitError() string {
	t := theme.Current()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Error)).
		MarginBottom(1).
		Render("⚠ Publish failed")

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(m.submitError)

	buttons := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Render("Press Y to retry, N or ESC to cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, message, "", buttons)

	return lipgloss.NewStyle().
		Width(60).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Error)).
		Render(content)
}
