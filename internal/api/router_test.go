package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/clients/googlemaps"
	"github.com/listingkit/listingkit-backend/internal/clients/schooldigger"
	"github.com/listingkit/listingkit-backend/internal/config"
	"github.com/listingkit/listingkit-backend/internal/database"
	"github.com/listingkit/listingkit-backend/internal/middleware"
	"github.com/listingkit/listingkit-backend/internal/repository"
	"github.com/listingkit/listingkit-backend/internal/service"
)

// newTestRouter wires the real stack against stub provider servers
func newTestRouter(t *testing.T, authRequired bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	maps := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/geocode/json":
			w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Austin, TX","geometry":{"location":{"lat":30.2672,"lng":-97.7431}}}]}`))
		case "/place/nearbysearch/json":
			w.Write([]byte(`{"status":"OK","results":[{"place_id":"` + r.URL.Query().Get("type") + `-1","name":"Spot","types":["` + r.URL.Query().Get("type") + `"],"rating":4.2}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(maps.Close)

	schools := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"numberOfSchools":1,"numberOfPages":1,"schoolList":[{"schoolid":"1","schoolName":"Austin High"}]}`))
	}))
	t.Cleanup(schools.Close)

	db, err := database.Open(database.Config{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.AuthRequired = authRequired

	svc := Services{
		Places:  service.NewPlacesService(googlemaps.NewClient("key", maps.URL, nil), cfg.PlacesPerType, cfg.UpstreamTimeout, zap.NewNop()),
		Schools: service.NewSchoolService(schooldigger.NewClient("app", "key", schools.URL)),
		Auth:    service.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.TokenTTL),
		Limiter: middleware.NewRateLimiter(100, time.Minute),
	}
	return SetupRouter(cfg, svc, zap.NewNop())
}

func do(r http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t, false), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	w := do(newTestRouter(t, false), http.MethodOptions, "/api/places", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPlacesAndSchools_Open(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(r, http.MethodGet, "/api/places?location=Austin", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var places struct {
		TotalCount  int      `json:"total_count"`
		SearchTypes []string `json:"search_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &places))
	assert.Equal(t, 3, places.TotalCount)
	assert.Equal(t, []string{"restaurant", "park", "tourist_attraction"}, places.SearchTypes)

	w = do(r, http.MethodGet, "/api/schools?zip=78701", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Austin High")

	w = do(r, http.MethodGet, "/api/schools", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/schools?zip=78701&radius=80", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthFlowGatesDataRoutes(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/places?location=Austin", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/signup", `{"email":"agent@example.com","password":"open-house-1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/auth/signup", `{"email":"agent@example.com","password":"open-house-1"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"agent@example.com","password":"nope-nope"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"whatever1"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"agent@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", `{"email":"agent@example.com","password":"open-house-1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var session struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.True(t, session.Success)
	assert.Equal(t, "agent@example.com", session.Data.User.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = do(r, http.MethodGet, "/api/places?location=Austin&types=park", "", session.Data.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}
