package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/clients/googlemaps"
	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/service"
)

type fakeMaps struct {
	configured bool
	geocode    []models.GeocodeResult
	results    map[string][]models.Place
	searchErr  error
	photo      []byte
	photoErr   error
}

func (f *fakeMaps) Configured() bool { return f.configured }

func (f *fakeMaps) Geocode(ctx context.Context, address string) ([]models.GeocodeResult, error) {
	return f.geocode, nil
}

func (f *fakeMaps) SearchNearby(ctx context.Context, center models.LatLng, radiusMeters int, category string) ([]models.Place, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[category], nil
}

func (f *fakeMaps) FetchPhoto(ctx context.Context, reference string, maxWidth int) ([]byte, string, error) {
	return f.photo, "image/jpeg", f.photoErr
}

func rated(id string, rating float64, types ...string) models.Place {
	return models.Place{ID: id, Name: id, Types: types, Rating: &rating}
}

func newPlacesRouter(maps *fakeMaps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPlacesHandler(service.NewPlacesService(maps, 2, time.Second, zap.NewNop()))
	r := gin.New()
	r.GET("/api/places", h.GetPlaces)
	r.GET("/api/places/photo", h.GetPhoto)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func austinMaps() *fakeMaps {
	return &fakeMaps{
		configured: true,
		geocode:    []models.GeocodeResult{{FormattedAddress: "Austin, TX, USA", Location: models.LatLng{Lat: 30.2672, Lng: -97.7431}}},
		results: map[string][]models.Place{
			"restaurant": {rated("r1", 4.1, "restaurant"), rated("r2", 4.6, "restaurant"), rated("r3", 3.2, "restaurant")},
			"park":       {rated("p1", 4.4, "park")},
		},
	}
}

func TestGetPlaces_OK(t *testing.T) {
	w := get(newPlacesRouter(austinMaps()), "/api/places?location=Austin&types=restaurant,park&radius=2000")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Success  bool `json:"success"`
		Location struct {
			Address     string        `json:"address"`
			Coordinates models.LatLng `json:"coordinates"`
		} `json:"location"`
		Places       map[string][]models.Place `json:"places"`
		TotalCount   int                       `json:"total_count"`
		RadiusMeters int                       `json:"radius_meters"`
		SearchTypes  []string                  `json:"search_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, "Austin, TX, USA", body.Location.Address)
	assert.Equal(t, 2000, body.RadiusMeters)
	assert.Equal(t, []string{"restaurant", "park"}, body.SearchTypes)
	assert.Equal(t, 3, body.TotalCount)
	require.Len(t, body.Places["restaurant"], 2)
	assert.Equal(t, "r2", body.Places["restaurant"][0].ID)
	assert.Equal(t, "r1", body.Places["restaurant"][1].ID)
}

func TestGetPlaces_LimitOverridesQuota(t *testing.T) {
	w := get(newPlacesRouter(austinMaps()), "/api/places?location=Austin&types=restaurant&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.PlacesResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Places["restaurant"], 1)
}

func TestGetPlaces_Errors(t *testing.T) {
	tests := []struct {
		name     string
		maps     func() *fakeMaps
		target   string
		wantCode int
		wantErr  string
	}{
		{"missing location", austinMaps, "/api/places", http.StatusBadRequest, "Location is required"},
		{"radius not a number", austinMaps, "/api/places?location=Austin&radius=far", http.StatusBadRequest, "Radius"},
		{"radius too small", austinMaps, "/api/places?location=Austin&radius=99", http.StatusBadRequest, "Radius"},
		{"radius too large", austinMaps, "/api/places?location=Austin&radius=50001", http.StatusBadRequest, "Radius"},
		{"radius zero", austinMaps, "/api/places?location=Austin&radius=0", http.StatusBadRequest, "Radius"},
		{"bad limit", austinMaps, "/api/places?location=Austin&limit=0", http.StatusBadRequest, "Limit"},
		{"not found", func() *fakeMaps {
			m := austinMaps()
			m.geocode = nil
			return m
		}, "/api/places?location=NoSuchPlaceXYZ123", http.StatusNotFound, "Location not found"},
		{"no api key", func() *fakeMaps {
			m := austinMaps()
			m.configured = false
			return m
		}, "/api/places?location=Austin", http.StatusInternalServerError, "Google Maps API key not configured"},
		{"upstream status", func() *fakeMaps {
			m := austinMaps()
			m.searchErr = &googlemaps.APIError{HTTPStatus: http.StatusServiceUnavailable, Message: "down"}
			return m
		}, "/api/places?location=Austin", http.StatusServiceUnavailable, "Failed to fetch places"},
		{"upstream status not ok", func() *fakeMaps {
			m := austinMaps()
			m.searchErr = &googlemaps.APIError{Status: "OVER_QUERY_LIMIT", HTTPStatus: http.StatusOK}
			return m
		}, "/api/places?location=Austin", http.StatusInternalServerError, "Failed to fetch places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newPlacesRouter(tt.maps()), tt.target)
			assert.Equal(t, tt.wantCode, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.wantErr)
		})
	}
}

func TestGetPlaces_UpstreamDetails(t *testing.T) {
	m := austinMaps()
	m.searchErr = &googlemaps.APIError{Status: "OVER_QUERY_LIMIT", HTTPStatus: http.StatusOK}
	w := get(newPlacesRouter(m), "/api/places?location=Austin")

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["details"], "OVER_QUERY_LIMIT")
}

func TestGetPhoto(t *testing.T) {
	m := austinMaps()
	m.photo = []byte("jpeg-bytes")

	w := get(newPlacesRouter(m), "/api/places/photo?reference=abc")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                  `json:"success"`
		Photo   models.PlacePhotoData `json:"photo"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "anBlZy1ieXRlcw==", body.Photo.Base64)
	assert.Equal(t, "image/jpeg", body.Photo.ContentType)
}

func TestGetPhoto_Errors(t *testing.T) {
	w := get(newPlacesRouter(austinMaps()), "/api/places/photo")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(newPlacesRouter(austinMaps()), "/api/places/photo?reference=abc&maxwidth=wide")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m := austinMaps()
	m.photoErr = &googlemaps.APIError{HTTPStatus: http.StatusForbidden, Message: "denied"}
	w = get(newPlacesRouter(m), "/api/places/photo?reference=abc")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
