// Package listing implements the property-listing wizard core: the session
// state container, step navigation with gating, per-step validation, and the
// submission coordinator. The package owns no I/O beyond the collaborator
// interfaces it is handed; everything here is driven by a single logical
// thread of control (the TUI event loop).
package listing

// FormData is the accumulating record of everything the user has entered.
// Different steps populate disjoint subsets, so most fields are optional and
// validated incrementally by the per-step predicates rather than a single
// upfront schema.
type FormData struct {
	// Property type
	PropertyType   string `json:"propertyType"`
	PropertyTypeID string `json:"propertyTypeId,omitempty"`

	// Location
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	District      string   `json:"district"`
	Subdistrict   string   `json:"subdistrict"`
	StreetAddress string   `json:"streetAddress"`
	HouseNumber   string   `json:"houseNumber"`
	ZipCode       string   `json:"zipCode"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`

	// Property details
	Bedrooms  int      `json:"bedrooms"`
	Bathrooms int      `json:"bathrooms"`
	AreaSqm   float64  `json:"areaSqm"`
	Furnished bool     `json:"furnished"`
	Amenities []string `json:"amenities"`

	// Content
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"` // hosted URLs only, never binary content

	// Legal & pricing
	Price               float64  `json:"price"`
	IsAvailable         bool     `json:"isAvailable"`
	LegalDocuments      []string `json:"legalDocuments"`
	MaintenanceIncluded string   `json:"maintenanceIncluded"` // "yes" | "no" | ""
	LandlordType        string   `json:"landlordType"`        // "individual" | "company" | "partnership" | ""
}

// InitialFormData returns the form defaults for a fresh session: one bedroom,
// one bathroom, available for rent, everything else empty.
func InitialFormData() FormData {
	return FormData{
		Bedrooms:    1,
		Bathrooms:   1,
		IsAvailable: true,
		Amenities:   []string{},
		Images:      []string{},
	}
}

// Patch is a partial update to FormData. Nil fields are left untouched;
// non-nil fields overwrite, last write wins per key. Slices are replaced
// wholesale, not appended.
type Patch struct {
	PropertyType   *string `json:"propertyType,omitempty"`
	PropertyTypeID *string `json:"propertyTypeId,omitempty"`

	Address       *string  `json:"address,omitempty"`
	City          *string  `json:"city,omitempty"`
	State         *string  `json:"state,omitempty"`
	District      *string  `json:"district,omitempty"`
	Subdistrict   *string  `json:"subdistrict,omitempty"`
	StreetAddress *string  `json:"streetAddress,omitempty"`
	HouseNumber   *string  `json:"houseNumber,omitempty"`
	ZipCode       *string  `json:"zipCode,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`

	Bedrooms  *int      `json:"bedrooms,omitempty"`
	Bathrooms *int      `json:"bathrooms,omitempty"`
	AreaSqm   *float64  `json:"areaSqm,omitempty"`
	Furnished *bool     `json:"furnished,omitempty"`
	Amenities *[]string `json:"amenities,omitempty"`

	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`

	Price               *float64  `json:"price,omitempty"`
	IsAvailable         *bool     `json:"isAvailable,omitempty"`
	LegalDocuments      *[]string `json:"legalDocuments,omitempty"`
	MaintenanceIncluded *string   `json:"maintenanceIncluded,omitempty"`
	LandlordType        *string   `json:"landlordType,omitempty"`
}

// Apply merges the patch into the form, shallow, last-write-wins per key.
func (p Patch) Apply(d *FormData) {
	if p.PropertyType != nil {
		d.PropertyType = *p.PropertyType
	}
	if p.PropertyTypeID != nil {
		d.PropertyTypeID = *p.PropertyTypeID
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.City != nil {
		d.City = *p.City
	}
	if p.State != nil {
		d.State = *p.State
	}
	if p.District != nil {
		d.District = *p.District
	}
	if p.Subdistrict != nil {
		d.Subdistrict = *p.Subdistrict
	}
	if p.StreetAddress != nil {
		d.StreetAddress = *p.StreetAddress
	}
	if p.HouseNumber != nil {
		d.HouseNumber = *p.HouseNumber
	}
	if p.ZipCode != nil {
		d.ZipCode = *p.ZipCode
	}
	if p.Latitude != nil {
		lat := *p.Latitude
		d.Latitude = &lat
	}
	if p.Longitude != nil {
		lng := *p.Longitude
		d.Longitude = &lng
	}
	if p.Bedrooms != nil {
		d.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		d.Bathrooms = *p.Bathrooms
	}
	if p.AreaSqm != nil {
		d.AreaSqm = *p.AreaSqm
	}
	if p.Furnished != nil {
		d.Furnished = *p.Furnished
	}
	if p.Amenities != nil {
		d.Amenities = append([]string(nil), (*p.Amenities)...)
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Images != nil {
		d.Images = append([]string(nil), (*p.Images)...)
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.IsAvailable != nil {
		d.IsAvailable = *p.IsAvailable
	}
	if p.LegalDocuments != nil {
		d.LegalDocuments = append([]string(nil), (*p.LegalDocuments)...)
	}
	if p.MaintenanceIncluded != nil {
		d.MaintenanceIncluded = *p.MaintenanceIncluded
	}
	if p.LandlordType != nil {
		d.LandlordType = *p.LandlordType
	}
}

// IsZero reports whether the patch carries no fields.
func (p Patch) IsZero() bool {
	return p == (Patch{})
}

// Helper constructors keep call sites readable when building patches from
// UI bindings.

// String returns a pointer to s, for use in Patch literals.
func String(s string) *string { return &s }

// Int returns a pointer to i, for use in Patch literals.
func Int(i int) *int { return &i }

// Float returns a pointer to f, for use in Patch literals.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b, for use in Patch literals.
func Bool(b bool) *bool { return &b }

// Strings returns a pointer to a copy of ss, for use in Patch literals.
func Strings(ss ...string) *[]string {
	cp := append([]string(nil), ss...)
	return &cp
}
