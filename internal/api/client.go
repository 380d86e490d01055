// Package api is the HTTP client for the Rentverse marketplace backend. It
// covers the three collaborator operations the listing wizard needs: property
// creation, property-type lookup, and AI price recommendation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/logger"
)

const defaultTimeout = 30 * time.Second

// Client talks JSON to the Rentverse backend.
type Client struct {
	baseURL string
	token   TokenSource
	http    *http.Client
}

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token() (string, error)
}

// New creates a client for the given base URL, e.g. "https://api.rentverse.example".
func New(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetHTTPClient overrides the underlying HTTP client. Used by tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.http = hc
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// CreateProperty posts a new listing. Implements listing.PropertyService.
func (c *Client) CreateProperty(ctx context.Context, payload listing.PropertyPayload) (*listing.PropertyRecord, error) {
	var result struct {
		Property listing.PropertyRecord `json:"property"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/properties", payload, &result, true); err != nil {
		return nil, err
	}
	return &result.Property, nil
}

// PropertyType is one entry from the property-types catalogue.
type PropertyType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// PropertyTypes fetches the backend's property-type catalogue, used to
// resolve the dynamic propertyTypeId for a selected type name.
func (c *Client) PropertyTypes(ctx context.Context) ([]PropertyType, error) {
	var types []PropertyType
	if err := c.do(ctx, http.MethodGet, "/api/property-types", nil, &types, false); err != nil {
		return nil, err
	}
	return types, nil
}

// ResolvePropertyTypeID finds the backend id for a property-type name or
// code. Returns an empty string when no match exists; callers fall back to
// the static mapping in the submission coordinator.
func (c *Client) ResolvePropertyTypeID(ctx context.Context, name string) string {
	types, err := c.PropertyTypes(ctx)
	if err != nil {
		logger.Warn("property-type lookup failed, using fallback mapping: %v", err)
		return ""
	}
	for _, t := range types {
		if t.Name == name || t.Code == strings.ToUpper(name) {
			return t.ID
		}
	}
	return ""
}

// PriceCriteria describes a property for the price-recommendation model.
type PriceCriteria struct {
	Area         float64 `json:"area"`
	Bathrooms    int     `json:"bathrooms"`
	Bedrooms     int     `json:"bedrooms"`
	Furnished    string  `json:"furnished"` // "Yes" or "No"
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
}

// PriceRecommendation is the model's suggested monthly rent.
type PriceRecommendation struct {
	Currency       string  `json:"currency"`
	PredictedPrice float64 `json:"predicted_price"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
}

// RecommendPrice asks the pricing model for a rent suggestion. When the call
// fails it degrades to a local area-based heuristic rather than surfacing an
// error: the recommendation is advisory, the user can always type a price.
func (c *Client) RecommendPrice(ctx context.Context, criteria PriceCriteria) PriceRecommendation {
	var result struct {
		PredictedPrice float64 `json:"predicted_price"`
	}
	err := c.do(ctx, http.MethodPost, "/api/predictions/predict", criteria, &result, false)
	if err != nil {
		logger.Warn("price recommendation failed, using heuristic: %v", err)
		fallback := clamp(criteria.Area*2, 1000, 5000)
		return PriceRecommendation{
			Currency:       "MYR",
			PredictedPrice: fallback,
			Min:            fallback * 0.8,
			Max:            fallback * 1.2,
		}
	}

	return PriceRecommendation{
		Currency:       "MYR",
		PredictedPrice: result.PredictedPrice,
		Min:            result.PredictedPrice * 0.9,
		Max:            result.PredictedPrice * 1.1,
	}
}

// do runs one JSON round trip against the backend, unwrapping the response
// envelope and mapping error payloads onto error values.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.token.Token()
		if err != nil {
			return fmt.Errorf("loading auth token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug("api %s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
