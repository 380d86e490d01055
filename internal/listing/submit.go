package listing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rentverse/lettr/internal/logger"
)

// Sentinel errors returned by Submit. All are recoverable: session state is
// preserved so the user never loses entered data.
var (
	// ErrNotAuthenticated means the auth precondition failed; the caller
	// should send the user to a login flow and retry.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSubmitInFlight means a submission is already running. Callers treat
	// it as a no-op, not a hard failure.
	ErrSubmitInFlight = errors.New("submission already in flight")
)

// Authorizer answers the authentication precondition for submission.
type Authorizer interface {
	IsAuthenticated() bool
}

// PropertyService is the external property-creation API the coordinator
// delegates to.
type PropertyService interface {
	CreateProperty(ctx context.Context, payload PropertyPayload) (*PropertyRecord, error)
}

// PropertyPayload is the request shape of the property-creation API.
type PropertyPayload struct {
	Code           string   `json:"code"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zipCode"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Price          float64  `json:"price"`
	CurrencyCode   string   `json:"currencyCode"`
	PropertyTypeID string   `json:"propertyTypeId"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	AreaSqm        float64  `json:"areaSqm"`
	Furnished      bool     `json:"furnished"`
	IsAvailable    bool     `json:"isAvailable"`
	Images         []string `json:"images"`
	AmenityIDs     []string `json:"amenityIds"`
}

// PropertyRecord is the created listing as returned by the API.
type PropertyRecord struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submitter finalizes a wizard session: it enforces the auth precondition,
// maps the accumulated form data to the API payload, calls the creation API,
// and clears the session on success. Exactly one submission may be in flight
// at a time.
type Submitter struct {
	wizard   *Wizard
	auth     Authorizer
	svc      PropertyService
	currency string

	inFlight atomic.Bool
}

// NewSubmitter wires a submission coordinator to its session and
// collaborators. currency is the ISO code stamped on every payload.
func NewSubmitter(w *Wizard, auth Authorizer, svc PropertyService, currency string) *Submitter {
	if currency == "" {
		currency = "MYR"
	}
	return &Submitter{
		wizard:   w,
		auth:     auth,
		svc:      svc,
		currency: currency,
	}
}

// InFlight reports whether a submission is currently running.
func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

// Submit finalizes the session. On success the wizard state is cleared so a
// fresh session starts if the user lists another property. On any failure
// the state is preserved and the error is returned as a value for the caller
// to display; the wizard stays on its current step.
func (s *Submitter) Submit(ctx context.Context) (*PropertyRecord, error) {
	// Single in-flight invariant: a second Submit while one is running is a
	// no-op signalled by ErrSubmitInFlight.
	if !s.inFlight.CompareAndSwap(false, true) {
		logger.Debug("submit rejected: already in flight")
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if s.auth == nil || !s.auth.IsAuthenticated() {
		logger.Info("submit aborted: session not authenticated")
		return nil, ErrNotAuthenticated
	}

	payload := BuildPayload(s.wizard.Data(), s.currency)
	logger.Debug("submitting property %s (%d images, price %.2f)",
		payload.Code, len(payload.Images), payload.Price)

	record, err := s.svc.CreateProperty(ctx, payload)
	if err != nil {
		logger.Error("property creation failed: %v", err)
		return nil, fmt.Errorf("creating property: %w", err)
	}

	logger.Info("property %s created as %s", payload.Code, record.ID)
	s.wizard.ClearTemporaryData()
	return record, nil
}

// BuildPayload maps the accumulated form data to the creation API's request
// shape. The mapping is total: every required payload field is derived from
// some form field, with defaults for the optional ones — Kuala Lumpur city
// centre coordinates and Selangor defaults for missing location data, price
// floored at 1, blank image URLs filtered out.
func BuildPayload(data FormData, currency string) PropertyPayload {
	images := make([]string, 0, len(data.Images))
	for _, url := range data.Images {
		if strings.TrimSpace(url) != "" {
			images = append(images, url)
		}
	}

	amenityIDs := data.Amenities
	if amenityIDs == nil {
		amenityIDs = []string{}
	}

	return PropertyPayload{
		Code:           generatePropertyCode(),
		Title:          withDefault(data.Title, "Untitled Property"),
		Description:    withDefault(data.Description, "No description provided"),
		Address:        resolveAddress(data),
		City:           withDefault(data.City, "Kuala Lumpur"),
		State:          withDefault(data.State, "Selangor"),
		ZipCode:        withDefault(data.ZipCode, "50000"),
		Latitude:       coord(data.Latitude, 3.139),
		Longitude:      coord(data.Longitude, 101.6869),
		Price:          maxFloat(data.Price, 1),
		CurrencyCode:   currency,
		PropertyTypeID: resolvePropertyTypeID(data),
		Bedrooms:       maxInt(data.Bedrooms, 0),
		Bathrooms:      maxInt(data.Bathrooms, 0),
		AreaSqm:        maxFloat(data.AreaSqm, 1),
		Furnished:      data.Furnished,
		IsAvailable:    data.IsAvailable,
		Images:         images,
		AmenityIDs:     amenityIDs,
	}
}

// resolveAddress falls back through street address, free-form address, then
// a "city, state" composite.
func resolveAddress(data FormData) string {
	if data.StreetAddress != "" {
		return data.StreetAddress
	}
	if data.Address != "" {
		return data.Address
	}
	return fmt.Sprintf("%s, %s",
		withDefault(data.City, "Kuala Lumpur"),
		withDefault(data.State, "Selangor"))
}

// propertyTypeIDs is the fallback mapping from type code to backend id, used
// when the dynamic id was never resolved from the property-types API.
var propertyTypeIDs = map[string]string{
	"Apartment":   "1",
	"Condominium": "1",
	"Penthouse":   "1",
	"Studio":      "1",
	"House":       "2",
	"Townhouse":   "2",
	"Villa":       "2",
}

func resolvePropertyTypeID(data FormData) string {
	if data.PropertyTypeID != "" {
		return data.PropertyTypeID
	}
	if id, ok := propertyTypeIDs[data.PropertyType]; ok {
		return id
	}
	return "1"
}

// generatePropertyCode builds a unique listing code: PROP + last six digits
// of the unix-millisecond clock + three random base36 characters.
func generatePropertyCode() string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}

	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}

	return "PROP" + ts + string(suffix)
}

func withDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func coord(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

func maxFloat(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
