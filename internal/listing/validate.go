package listing

import (
	"strings"

	"github.com/rentverse/lettr/internal/registry"
)

// ValidationResult is the outcome of a single step validation. Failures are
// values, never errors: the wizard must stay callable from UI event handlers
// without try/catch-style plumbing.
type ValidationResult struct {
	OK     bool
	Reason Reason // symbolic failure code, empty when OK
}

// Reason is a symbolic code identifying which step requirement failed.
type Reason string

const (
	ReasonPropertyTypeMissing Reason = "property_type_missing"
	ReasonCoordinatesMissing  Reason = "coordinates_missing"
	ReasonAddressIncomplete   Reason = "address_incomplete"
	ReasonRoomsInvalid        Reason = "rooms_invalid"
	ReasonAreaInvalid         Reason = "area_invalid"
	ReasonPhotosMissing       Reason = "photos_missing"
	ReasonTitleMissing        Reason = "title_missing"
	ReasonDescriptionMissing  Reason = "description_missing"
	ReasonLegalIncomplete     Reason = "legal_incomplete"
	ReasonPriceInvalid        Reason = "price_invalid"
)

func pass() ValidationResult {
	return ValidationResult{OK: true}
}

func fail(r Reason) ValidationResult {
	return ValidationResult{OK: false, Reason: r}
}

// Validate evaluates the predicate for the given step id against the form
// data collected so far. Unknown step ids validate true: intro and transition
// screens have no hard requirement and must always be passable.
func Validate(stepID string, data FormData) ValidationResult {
	switch stepID {
	case "property-type":
		if data.PropertyType == "" || !registry.IsPropertyType(data.PropertyType) {
			return fail(ReasonPropertyTypeMissing)
		}
		return pass()

	case "location-map":
		if data.Latitude == nil || data.Longitude == nil {
			return fail(ReasonCoordinatesMissing)
		}
		return pass()

	case "location-details":
		if strings.TrimSpace(data.State) == "" || strings.TrimSpace(data.District) == "" {
			return fail(ReasonAddressIncomplete)
		}
		return pass()

	case "basic-info":
		// Zero bedrooms or bathrooms is a valid studio; zero area is not.
		if data.Bedrooms < 0 || data.Bathrooms < 0 {
			return fail(ReasonRoomsInvalid)
		}
		if data.AreaSqm <= 0 {
			return fail(ReasonAreaInvalid)
		}
		return pass()

	case "photos":
		if len(data.Images) < 1 {
			return fail(ReasonPhotosMissing)
		}
		return pass()

	case "title":
		if strings.TrimSpace(data.Title) == "" {
			return fail(ReasonTitleMissing)
		}
		return pass()

	case "description":
		if strings.TrimSpace(data.Description) == "" {
			return fail(ReasonDescriptionMissing)
		}
		return pass()

	case "legal":
		if data.MaintenanceIncluded == "" || data.LandlordType == "" {
			return fail(ReasonLegalIncomplete)
		}
		return pass()

	case "pricing":
		if data.Price <= 0 {
			return fail(ReasonPriceInvalid)
		}
		return pass()

	default:
		return pass()
	}
}

// stepMessages maps step ids to the human-readable message shown when that
// step fails validation. The UI depends on this mapping 1:1.
var stepMessages = map[string]string{
	"property-type":    "Please select a property type",
	"location-map":     "Please pin your property on the map",
	"location-details": "Please fill in the state and district",
	"basic-info":       "Bedrooms and bathrooms cannot be negative, and area must be greater than zero",
	"photos":           "At least one photo is required",
	"title":            "Please give your property a title",
	"description":      "Please describe your property",
	"legal":            "Please answer the maintenance and landlord questions",
	"pricing":          "Price must be greater than zero",
}

// MessageFor returns the per-step validation failure message, or an empty
// string for steps with no requirement.
func MessageFor(stepID string) string {
	return stepMessages[stepID]
}
