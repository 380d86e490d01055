// Package registry holds the canonical, ordered catalogue of listing wizard
// steps. The registry is built once at process start and is immutable: step
// position in the slice is the canonical step index used by navigation.
package registry

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by GetStep for an invalid index.
var ErrOutOfRange = errors.New("step index out of range")

// Group identifies one of the three wizard phases. Groups exist only for
// progress display; they never participate in gating.
type Group string

const (
	GroupAboutPlace Group = "about-your-place"
	GroupStandOut   Group = "stand-out"
	GroupPublish    Group = "publish"
)

// Component kinds rendered by the TUI for a step.
const (
	ComponentIntro    = "intro"
	ComponentSelect   = "select"
	ComponentCoords   = "coords"
	ComponentForm     = "form"
	ComponentNumbers  = "numbers"
	ComponentPhotos   = "photos"
	ComponentText     = "text"
	ComponentTextarea = "textarea"
	ComponentLegal    = "legal"
	ComponentPrice    = "price"
)

// StepDefinition describes a single wizard screen.
type StepDefinition struct {
	ID        string // unique stable key, e.g. "location-map"
	Title     string // display label
	Component string // TUI view kind rendered for this step
	Group     Group  // wizard phase, for progress grouping only
}

// Registry is the ordered, read-only step catalogue.
type Registry struct {
	steps   []StepDefinition
	byID    map[string]int
	groups  map[Group]Range
}

// Range is a contiguous half-open index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Contains reports whether index i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Len returns the number of steps in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// New builds a registry from an ordered step list. Steps of the same group
// must be contiguous. Duplicate IDs are rejected.
func New(steps []StepDefinition) (*Registry, error) {
	r := &Registry{
		steps:  steps,
		byID:   make(map[string]int, len(steps)),
		groups: make(map[Group]Range),
	}

	for i, step := range steps {
		if step.ID == "" {
			return nil, fmt.Errorf("step at index %d has empty id", i)
		}
		if _, dup := r.byID[step.ID]; dup {
			return nil, fmt.Errorf("duplicate step id: %s", step.ID)
		}
		r.byID[step.ID] = i

		rng, seen := r.groups[step.Group]
		if !seen {
			r.groups[step.Group] = Range{Start: i, End: i + 1}
			continue
		}
		if rng.End != i {
			return nil, fmt.Errorf("group %s is not contiguous at index %d", step.Group, i)
		}
		rng.End = i + 1
		r.groups[step.Group] = rng
	}

	return r, nil
}

// GetStep returns the step at index, or ErrOutOfRange.
func (r *Registry) GetStep(index int) (StepDefinition, error) {
	if index < 0 || index >= len(r.steps) {
		return StepDefinition{}, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return r.steps[index], nil
}

// StepCount returns the number of steps.
func (r *Registry) StepCount() int {
	return len(r.steps)
}

// IndexOf returns the index of the step with the given id, or -1.
func (r *Registry) IndexOf(id string) int {
	if i, ok := r.byID[id]; ok {
		return i
	}
	return -1
}

// GroupRange returns the contiguous index range for a group. The second
// return value is false if the group has no steps.
func (r *Registry) GroupRange(g Group) (Range, bool) {
	rng, ok := r.groups[g]
	return rng, ok
}

// Groups returns the three wizard phases in canonical order.
func Groups() []Group {
	return []Group{GroupAboutPlace, GroupStandOut, GroupPublish}
}

// PropertyTypes lists the property-type codes the marketplace accepts.
// The property-type step validates against this set.
func PropertyTypes() []string {
	return []string{
		"Apartment",
		"Condominium",
		"House",
		"Townhouse",
		"Villa",
		"Penthouse",
		"Studio",
	}
}

// IsPropertyType reports whether code is a known property-type code.
func IsPropertyType(code string) bool {
	for _, t := range PropertyTypes() {
		if t == code {
			return true
		}
	}
	return false
}

// Default returns the canonical listing flow: three phases, fourteen steps.
// Panics only on a programming error in the static step table.
func Default() *Registry {
	r, err := New([]StepDefinition{
		{ID: "intro", Title: "Getting Started", Component: ComponentIntro, Group: GroupAboutPlace},
		{ID: "step-one-intro", Title: "Tell us about your place", Component: ComponentIntro, Group: GroupAboutPlace},
		{ID: "property-type", Title: "Property Type", Component: ComponentSelect, Group: GroupAboutPlace},
		{ID: "location-map", Title: "Location & Map", Component: ComponentCoords, Group: GroupAboutPlace},
		{ID: "location-details", Title: "Address Details", Component: ComponentForm, Group: GroupAboutPlace},
		{ID: "basic-info", Title: "Basic Information", Component: ComponentNumbers, Group: GroupAboutPlace},
		{ID: "property-details", Title: "Property Details", Component: ComponentForm, Group: GroupAboutPlace},
		{ID: "step-two-intro", Title: "Make it stand out", Component: ComponentIntro, Group: GroupStandOut},
		{ID: "photos", Title: "Add Photos", Component: ComponentPhotos, Group: GroupStandOut},
		{ID: "title", Title: "Property Title", Component: ComponentText, Group: GroupStandOut},
		{ID: "description", Title: "Description", Component: ComponentTextarea, Group: GroupStandOut},
		{ID: "step-three-intro", Title: "Finish and publish", Component: ComponentIntro, Group: GroupPublish},
		{ID: "legal", Title: "Legal Information", Component: ComponentLegal, Group: GroupPublish},
		{ID: "pricing", Title: "Set Your Price", Component: ComponentPrice, Group: GroupPublish},
	})
	if err != nil {
		panic(fmt.Sprintf("invalid default step registry: %v", err))
	}
	return r
}
