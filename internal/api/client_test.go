package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentverse/lettr/internal/listing"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

func TestCreateProperty(t *testing.T) {
	var gotAuth string
	var gotBody listing.PropertyPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/properties", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"property": map[string]any{
					"id":    "prop-123",
					"code":  gotBody.Code,
					"title": gotBody.Title,
					"price": gotBody.Price,
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-abc"))
	record, err := c.CreateProperty(context.Background(), listing.PropertyPayload{
		Code:  "PROP123456ABC",
		Title: "Nice condo",
		Price: 2000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "prop-123", record.ID)
	assert.Equal(t, "Nice condo", gotBody.Title)
	assert.Equal(t, 2000.0, gotBody.Price)
}

func TestCreatePropertyBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "price must be positive",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	_, err := c.CreateProperty(context.Background(), listing.PropertyPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price must be positive")
}

func TestPropertyTypesAndResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/property-types", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]string{
				{"id": "1", "name": "Apartment", "code": "APT"},
				{"id": "2", "name": "House", "code": "HOUSE"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))

	types, err := c.PropertyTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Apartment", types[0].Name)

	assert.Equal(t, "2", c.ResolvePropertyTypeID(context.Background(), "House"))
	assert.Equal(t, "2", c.ResolvePropertyTypeID(context.Background(), "house"), "code match is case-insensitive via upper")
	assert.Equal(t, "", c.ResolvePropertyTypeID(context.Background(), "Castle"))
}

func TestRecommendPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/predictions/predict", r.URL.Path)

		var criteria PriceCriteria
		require.NoError(t, json.NewDecoder(r.Body).Decode(&criteria))
		assert.Equal(t, 120.0, criteria.Area)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]float64{"predicted_price": 2400},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	rec := c.RecommendPrice(context.Background(), PriceCriteria{
		Area: 120, Bedrooms: 2, Bathrooms: 2,
		Furnished: "No", Location: "Selangor", PropertyType: "Condominium",
	})

	assert.Equal(t, 2400.0, rec.PredictedPrice)
	assert.InDelta(t, 2160, rec.Min, 0.01)
	assert.InDelta(t, 2640, rec.Max, 0.01)
	assert.Equal(t, "MYR", rec.Currency)
}

func TestRecommendPriceFallsBackToHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))

	// area*2 inside the clamp window
	rec := c.RecommendPrice(context.Background(), PriceCriteria{Area: 900})
	assert.Equal(t, 1800.0, rec.PredictedPrice)

	// small area clamps to the floor
	rec = c.RecommendPrice(context.Background(), PriceCriteria{Area: 30})
	assert.Equal(t, 1000.0, rec.PredictedPrice)

	// huge area clamps to the ceiling
	rec = c.RecommendPrice(context.Background(), PriceCriteria{Area: 10000})
	assert.Equal(t, 5000.0, rec.PredictedPrice)
}

func TestFileAuth(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file means unauthenticated", func(t *testing.T) {
		auth := &FileAuth{Path: filepath.Join(dir, "missing")}
		assert.False(t, auth.IsAuthenticated())
	})

	t.Run("empty file means unauthenticated", func(t *testing.T) {
		path := filepath.Join(dir, "empty")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0600))
		auth := &FileAuth{Path: path}
		assert.False(t, auth.IsAuthenticated())
	})

	t.Run("token present", func(t *testing.T) {
		path := filepath.Join(dir, "token")
		require.NoError(t, os.WriteFile(path, []byte("tok-xyz\n"), 0600))
		auth := &FileAuth{Path: path}
		assert.True(t, auth.IsAuthenticated())

		token, err := auth.Token()
		require.NoError(t, err)
		assert.Equal(t, "tok-xyz", token)
	})
}
