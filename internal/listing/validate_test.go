package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentverse/lettr/internal/registry"
)

func TestValidatePropertyType(t *testing.T) {
	assert.False(t, Validate("property-type", FormData{}).OK)
	assert.False(t, Validate("property-type", FormData{PropertyType: "Castle"}).OK, "unknown code rejected")
	assert.True(t, Validate("property-type", FormData{PropertyType: "Condominium"}).OK)

	res := Validate("property-type", FormData{})
	assert.Equal(t, ReasonPropertyTypeMissing, res.Reason)
}

func TestValidateLocationMap(t *testing.T) {
	lat, lng := 3.139, 101.6869

	assert.False(t, Validate("location-map", FormData{}).OK)
	assert.False(t, Validate("location-map", FormData{Latitude: &lat}).OK, "latitude alone is not enough")
	assert.True(t, Validate("location-map", FormData{Latitude: &lat, Longitude: &lng}).OK)
}

func TestValidateLocationDetails(t *testing.T) {
	assert.False(t, Validate("location-details", FormData{State: "Selangor"}).OK)
	assert.False(t, Validate("location-details", FormData{State: "  ", District: "Petaling"}).OK)
	assert.True(t, Validate("location-details", FormData{State: "Selangor", District: "Petaling"}).OK)
}

func TestValidateBasicInfo(t *testing.T) {
	tests := []struct {
		name      string
		bedrooms  int
		bathrooms int
		area      float64
		ok        bool
		reason    Reason
	}{
		{"studio with zero rooms is valid", 0, 0, 35, true, ""},
		{"normal unit", 2, 2, 120, true, ""},
		{"zero area invalid", 2, 2, 0, false, ReasonAreaInvalid},
		{"negative area invalid", 2, 2, -5, false, ReasonAreaInvalid},
		{"negative bedrooms invalid", -1, 1, 100, false, ReasonRoomsInvalid},
		{"negative bathrooms invalid", 1, -1, 100, false, ReasonRoomsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate("basic-info", FormData{
				Bedrooms:  tt.bedrooms,
				Bathrooms: tt.bathrooms,
				AreaSqm:   tt.area,
			})
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestValidatePhotos(t *testing.T) {
	assert.False(t, Validate("photos", FormData{}).OK)
	assert.False(t, Validate("photos", FormData{Images: []string{}}).OK)
	assert.True(t, Validate("photos", FormData{Images: []string{"https://x/1.jpg"}}).OK)
}

func TestValidateTitleAndDescription(t *testing.T) {
	assert.False(t, Validate("title", FormData{Title: "   "}).OK, "whitespace-only title rejected")
	assert.True(t, Validate("title", FormData{Title: "Nice condo"}).OK)

	assert.False(t, Validate("description", FormData{}).OK)
	assert.True(t, Validate("description", FormData{Description: "Spacious unit"}).OK)
}

func TestValidateLegal(t *testing.T) {
	assert.False(t, Validate("legal", FormData{MaintenanceIncluded: "yes"}).OK)
	assert.False(t, Validate("legal", FormData{LandlordType: "individual"}).OK)
	assert.True(t, Validate("legal", FormData{
		MaintenanceIncluded: "no",
		LandlordType:        "company",
	}).OK)
}

func TestValidatePricing(t *testing.T) {
	assert.False(t, Validate("pricing", FormData{}).OK)
	assert.False(t, Validate("pricing", FormData{Price: -100}).OK)
	assert.True(t, Validate("pricing", FormData{Price: 2000}).OK)
}

func TestValidateUnknownStepsPass(t *testing.T) {
	// Intro and transition screens have no requirements: fail-open.
	for _, id := range []string{"intro", "step-one-intro", "step-two-intro", "step-three-intro", "property-details", "never-heard-of-it"} {
		res := Validate(id, FormData{})
		assert.True(t, res.OK, "step %s should validate with empty data", id)
		assert.Empty(t, res.Reason)
	}
}

func TestMessageForCoversEveryGatedStep(t *testing.T) {
	// Every registry step with a predicate has a message; intro screens don't.
	reg := registry.Default()
	for i := 0; i < reg.StepCount(); i++ {
		step, err := reg.GetStep(i)
		assert.NoError(t, err)

		gated := !Validate(step.ID, FormData{AreaSqm: -1, Bedrooms: -1}).OK
		if gated {
			assert.NotEmpty(t, MessageFor(step.ID), "gated step %s needs a message", step.ID)
		}
	}
	assert.Empty(t, MessageFor("intro"))
}
