package listing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	authenticated bool
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }

type fakeService struct {
	mu       sync.Mutex
	calls    int
	payloads []PropertyPayload
	err      error
	block    chan struct{} // when set, CreateProperty waits until closed
	started  chan struct{} // when set, closed once the first call arrives
}

func (f *fakeService) CreateProperty(_ context.Context, payload PropertyPayload) (*PropertyRecord, error) {
	f.mu.Lock()
	f.calls++
	f.payloads = append(f.payloads, payload)
	if f.started != nil && f.calls == 1 {
		close(f.started)
	}
	block := f.block
	err := f.err
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &PropertyRecord{ID: "prop-1", Code: payload.Code, Title: payload.Title, Price: payload.Price}, nil
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// completeWizard fills and advances every step, leaving the wizard on the
// last step with valid data throughout.
func completeWizard(t *testing.T, w *Wizard) {
	t.Helper()
	advanceTo(t, w, "pricing")
	fillCurrentStep(t, w)
}

func TestSubmitHappyPath(t *testing.T) {
	w := newTestWizard(t)
	completeWizard(t, w)

	svc := &fakeService{}
	sub := NewSubmitter(w, &fakeAuth{authenticated: true}, svc, "MYR")

	record, err := sub.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "prop-1", record.ID)

	require.Equal(t, 1, svc.callCount())
	payload := svc.payloads[0]
	assert.Equal(t, 2000.0, payload.Price)
	assert.Equal(t, []string{"https://x/1.jpg"}, payload.Images)
	assert.Equal(t, "Nice condo", payload.Title)
	assert.Equal(t, "MYR", payload.CurrencyCode)

	// Success clears the session for the next listing.
	assert.Equal(t, 0, w.CurrentStepIndex())
	assert.False(t, w.IsDirty())
	assert.Equal(t, InitialFormData(), w.Data())
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	w := newTestWizard(t)
	completeWizard(t, w)

	svc := &fakeService{}
	sub := NewSubmitter(w, &fakeAuth{authenticated: false}, svc, "MYR")

	_, err := sub.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.Equal(t, 0, svc.callCount(), "no API call without auth")

	// State preserved so the user can log in and retry.
	assert.True(t, w.IsDirty())
	assert.Equal(t, "Nice condo", w.Data().Title)
}

func TestSubmitFailurePreservesState(t *testing.T) {
	w := newTestWizard(t)
	completeWizard(t, w)
	stepBefore := w.CurrentStepIndex()

	svc := &fakeService{err: errors.New("backend rejected the listing")}
	sub := NewSubmitter(w, &fakeAuth{authenticated: true}, svc, "MYR")

	_, err := sub.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend rejected")

	assert.Equal(t, stepBefore, w.CurrentStepIndex(), "wizard stays on the last step")
	assert.Equal(t, "Nice condo", w.Data().Title, "entered data intact")

	// Retry after the transient failure re-sends the same form data.
	svc.err = nil
	record, err := sub.Submit(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, 2, svc.callCount())
	assert.Equal(t, svc.payloads[0].Price, svc.payloads[1].Price)
}

func TestSubmitSingleInFlight(t *testing.T) {
	w := newTestWizard(t)
	completeWizard(t, w)

	svc := &fakeService{block: make(chan struct{}), started: make(chan struct{})}
	sub := NewSubmitter(w, &fakeAuth{authenticated: true}, svc, "MYR")

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background())
		done <- err
	}()

	// Wait for the first submission to reach the external call.
	<-svc.started
	assert.True(t, sub.InFlight())

	// A second submit while one is in flight is a no-op.
	_, err := sub.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrSubmitInFlight))

	close(svc.block)
	require.NoError(t, <-done)

	assert.Equal(t, 1, svc.callCount(), "only one CreateProperty invocation")
	assert.False(t, sub.InFlight())
}

func TestEndToEndScenario(t *testing.T) {
	w := newTestWizard(t)

	// Walk the whole flow the way the UI would.
	steps := []struct {
		id    string
		patch Patch
	}{
		{"intro", Patch{}},
		{"step-one-intro", Patch{}},
		{"property-type", Patch{PropertyType: String("Condominium")}},
		{"location-map", Patch{Latitude: Float(3.139), Longitude: Float(101.6869)}},
		{"location-details", Patch{State: String("Selangor"), District: String("Petaling")}},
		{"basic-info", Patch{Bedrooms: Int(2), Bathrooms: Int(2), AreaSqm: Float(120)}},
		{"property-details", Patch{}},
		{"step-two-intro", Patch{}},
		{"photos", Patch{Images: Strings("https://x/1.jpg")}},
		{"title", Patch{Title: String("Nice condo")}},
		{"description", Patch{Description: String("Spacious unit")}},
		{"step-three-intro", Patch{}},
		{"legal", Patch{MaintenanceIncluded: String("yes"), LandlordType: String("individual")}},
		{"pricing", Patch{Price: Float(2000)}},
	}

	for i, s := range steps {
		require.Equal(t, s.id, w.CurrentStep().ID, "step %d", i)
		w.UpdateData(s.patch)
		require.True(t, w.ValidateCurrentStep(), "step %s should validate", s.id)
		if i < len(steps)-1 {
			require.True(t, w.NextStep(), "step %s should advance", s.id)
		}
	}

	svc := &fakeService{}
	sub := NewSubmitter(w, &fakeAuth{authenticated: true}, svc, "MYR")

	_, err := sub.Submit(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, svc.callCount())
	payload := svc.payloads[0]
	assert.Equal(t, 2000.0, payload.Price)
	assert.Equal(t, []string{"https://x/1.jpg"}, payload.Images)

	// Session reset to its initial empty form.
	assert.Equal(t, 0, w.CurrentStepIndex())
	assert.Equal(t, InitialFormData(), w.Data())
	assert.False(t, w.IsDirty())
}

func TestBuildPayloadDefaults(t *testing.T) {
	payload := BuildPayload(FormData{PropertyType: "House"}, "MYR")

	assert.True(t, strings.HasPrefix(payload.Code, "PROP"))
	assert.Len(t, payload.Code, len("PROP")+6+3)
	assert.Equal(t, "Untitled Property", payload.Title)
	assert.Equal(t, "Kuala Lumpur", payload.City)
	assert.Equal(t, "Selangor", payload.State)
	assert.Equal(t, "50000", payload.ZipCode)
	assert.Equal(t, "Kuala Lumpur, Selangor", payload.Address)
	assert.InDelta(t, 3.139, payload.Latitude, 0.0001)
	assert.InDelta(t, 101.6869, payload.Longitude, 0.0001)
	assert.Equal(t, 1.0, payload.Price, "price floored at 1")
	assert.Equal(t, 1.0, payload.AreaSqm, "area floored at 1")
	assert.Equal(t, "2", payload.PropertyTypeID, "House resolves via fallback map")
	assert.NotNil(t, payload.Images)
	assert.NotNil(t, payload.AmenityIDs)
}

func TestBuildPayloadPrefersExplicitValues(t *testing.T) {
	lat, lng := 5.4164, 100.3327
	payload := BuildPayload(FormData{
		PropertyType:   "Condominium",
		PropertyTypeID: "42",
		StreetAddress:  "12 Jalan Example",
		City:           "George Town",
		State:          "Penang",
		ZipCode:        "10200",
		Latitude:       &lat,
		Longitude:      &lng,
		Bedrooms:       0,
		Bathrooms:      1,
		AreaSqm:        35,
		Title:          "Studio by the sea",
		Description:    "Compact and bright",
		Images:         []string{"https://x/1.jpg", "  ", "https://x/2.jpg"},
		Price:          1500,
		IsAvailable:    true,
	}, "MYR")

	assert.Equal(t, "42", payload.PropertyTypeID, "dynamic id wins over fallback map")
	assert.Equal(t, "12 Jalan Example", payload.Address, "street address preferred")
	assert.Equal(t, 0, payload.Bedrooms, "zero bedrooms preserved for studios")
	assert.Equal(t, []string{"https://x/1.jpg", "https://x/2.jpg"}, payload.Images, "blank URLs filtered")
	assert.Equal(t, 1500.0, payload.Price)
}
