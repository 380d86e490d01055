package listing

import (
	"encoding/json"
	"fmt"

	"github.com/rentverse/lettr/internal/logger"
	"github.com/rentverse/lettr/internal/registry"
)

// Wizard is the state container and navigation controller for one
// listing-creation session. It owns the session state exclusively; all reads
// and writes go through its methods. A Wizard is not safe for concurrent use
// from multiple goroutines — by design it lives on the TUI event loop.
type Wizard struct {
	reg *registry.Registry

	current        int
	highestReached int // monotonic unlock high-water mark
	data           FormData
	completed      map[int]bool
	dirty          bool
}

// New creates a fresh wizard session at step 0 with empty form data.
func New(reg *registry.Registry) *Wizard {
	return &Wizard{
		reg:       reg,
		data:      InitialFormData(),
		completed: make(map[int]bool),
	}
}

// Registry returns the step catalogue the wizard navigates.
func (w *Wizard) Registry() *registry.Registry {
	return w.reg
}

// CurrentStepIndex returns the index of the step the user is on.
func (w *Wizard) CurrentStepIndex() int {
	return w.current
}

// CurrentStep returns the definition of the step the user is on.
func (w *Wizard) CurrentStep() registry.StepDefinition {
	step, err := w.reg.GetStep(w.current)
	if err != nil {
		// current is maintained in bounds by every mutation path
		panic(fmt.Sprintf("wizard index invariant broken: %v", err))
	}
	return step
}

// IsLastStep reports whether the current step is the final one. The forward
// transition from the last step is submission, not an index increment.
func (w *Wizard) IsLastStep() bool {
	return w.current == w.reg.StepCount()-1
}

// Data returns a copy of the accumulated form data.
func (w *Wizard) Data() FormData {
	return w.data
}

// IsDirty reports whether any field has been written this session.
func (w *Wizard) IsDirty() bool {
	return w.dirty
}

// IsStepCompleted reports whether the step at index has passed validation
// at least once.
func (w *Wizard) IsStepCompleted(index int) bool {
	return w.completed[index]
}

// UpdateData merges a partial update into the form data, last write wins per
// key, and marks the session dirty. No validation happens here: data may be
// transiently invalid while the user is mid-edit.
func (w *Wizard) UpdateData(p Patch) {
	if p.IsZero() {
		return
	}
	p.Apply(&w.data)
	w.dirty = true
}

// ValidateCurrentStep evaluates the current step's predicate against the
// accumulated form data. Pure: no state is mutated.
func (w *Wizard) ValidateCurrentStep() bool {
	return w.ValidateCurrentStepResult().OK
}

// ValidateCurrentStepResult is ValidateCurrentStep with the symbolic reason
// code for the failure, for callers that surface per-step messages.
func (w *Wizard) ValidateCurrentStepResult() ValidationResult {
	return Validate(w.CurrentStep().ID, w.data)
}

// NextStep advances to the next step if the current step validates. It marks
// the current step completed first. Returns true if the index advanced. When
// validation fails, or when already on the last step, the index is unchanged
// and NextStep returns false; on the last step the step is still marked
// completed so the caller can hand off to submission.
func (w *Wizard) NextStep() bool {
	res := w.ValidateCurrentStepResult()
	if !res.OK {
		logger.Debug("nextStep blocked on %s: %s", w.CurrentStep().ID, res.Reason)
		return false
	}

	w.completed[w.current] = true

	if w.IsLastStep() {
		return false
	}

	w.current++
	if w.current > w.highestReached {
		w.highestReached = w.current
	}
	return true
}

// PreviousStep moves back one step. Going back is always allowed, never
// re-validates, and does not unmark completion. Returns true if the index
// changed.
func (w *Wizard) PreviousStep() bool {
	if w.current == 0 {
		return false
	}
	w.current--
	return true
}

// CanAccessStep reports whether the step at index is unlocked. The rule is
// monotonic unlock: once the session has reached index i, every step 0..i
// stays accessible for the rest of the session.
func (w *Wizard) CanAccessStep(index int) bool {
	if index < 0 || index >= w.reg.StepCount() {
		return false
	}
	return index <= w.highestReached
}

// GoToStep jumps directly to an unlocked step. Gated jumps are silently
// ignored: this is invoked from passive UI affordances (the step tracker)
// that must never crash the session.
func (w *Wizard) GoToStep(index int) {
	if !w.CanAccessStep(index) {
		logger.Debug("goToStep %d denied (highest reached %d)", index, w.highestReached)
		return
	}
	w.current = index
}

// ClearTemporaryData resets the session to its initial form: step 0, empty
// data, no completed steps, not dirty. Callers are expected to confirm with
// the user first when the session is dirty.
func (w *Wizard) ClearTemporaryData() {
	w.current = 0
	w.highestReached = 0
	w.data = InitialFormData()
	w.completed = make(map[int]bool)
	w.dirty = false
}

// Snapshot is the lossless serialized form of a wizard session.
type Snapshot struct {
	CurrentStepIndex int      `json:"currentStepIndex"`
	FormData         FormData `json:"formData"`
	CompletedSteps   []int    `json:"completedSteps"`
	IsDirty          bool     `json:"isDirty"`
}

// Snapshot captures the full session state for persistence.
func (w *Wizard) Snapshot() Snapshot {
	completed := make([]int, 0, len(w.completed))
	for i := 0; i < w.reg.StepCount(); i++ {
		if w.completed[i] {
			completed = append(completed, i)
		}
	}
	return Snapshot{
		CurrentStepIndex: w.current,
		FormData:         w.data,
		CompletedSteps:   completed,
		IsDirty:          w.dirty,
	}
}

// Restore rebuilds a wizard session from a snapshot. The unlock high-water
// mark is recovered as the furthest point the session can prove it reached:
// the saved index, or one past the highest completed step, whichever is
// greater.
func Restore(reg *registry.Registry, snap Snapshot) (*Wizard, error) {
	if snap.CurrentStepIndex < 0 || snap.CurrentStepIndex >= reg.StepCount() {
		return nil, fmt.Errorf("snapshot step index %d out of range", snap.CurrentStepIndex)
	}

	w := New(reg)
	w.current = snap.CurrentStepIndex
	w.highestReached = snap.CurrentStepIndex
	w.data = snap.FormData
	w.dirty = snap.IsDirty

	for _, i := range snap.CompletedSteps {
		if i < 0 || i >= reg.StepCount() {
			return nil, fmt.Errorf("snapshot completed step %d out of range", i)
		}
		w.completed[i] = true
		if i+1 > w.highestReached && i+1 < reg.StepCount() {
			w.highestReached = i + 1
		}
	}

	return w, nil
}

// MarshalJSON serializes the wizard via its snapshot.
func (w *Wizard) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Snapshot())
}
