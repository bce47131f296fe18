package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/models"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	// maxPhotosPerPlace caps the photo references kept per place
	maxPhotosPerPlace = 3
)

// ErrMissingAPIKey is returned when the client has no API key
var ErrMissingAPIKey = errors.New("google maps api key not configured")

// APIError is a non-successful answer from the Maps web services
type APIError struct {
	Status     string
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	if e.HTTPStatus != 0 && e.HTTPStatus != http.StatusOK {
		return fmt.Sprintf("Google Maps API error (status %d): %s", e.HTTPStatus, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("Google Maps API error (%s): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("Google Maps API error (%s)", e.Status)
}

// StatusCode returns the provider HTTP status when it was not 200
func (e *APIError) StatusCode() int {
	if e.HTTPStatus == http.StatusOK {
		return 0
	}
	return e.HTTPStatus
}

// Client talks to the Geocoding, Nearby Search and Place Photo endpoints
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Google Maps client. An empty baseURL uses DefaultBaseURL.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Google Maps API: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &APIError{HTTPStatus: resp.StatusCode, Message: string(body)}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse Google Maps response: %w", err)
	}
	return nil
}

func checkStatus(status, message string) error {
	switch status {
	case statusOK, statusZeroResults:
		return nil
	}
	return &APIError{Status: status, HTTPStatus: http.StatusOK, Message: message}
}

// Geocode resolves an address, zip code or neighborhood name.
// ZERO_RESULTS yields an empty slice.
func (c *Client) Geocode(ctx context.Context, address string) ([]models.GeocodeResult, error) {
	var result geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", url.Values{"address": {address}}, &result); err != nil {
		return nil, err
	}
	if err := checkStatus(result.Status, result.ErrorMessage); err != nil {
		return nil, err
	}

	matches := make([]models.GeocodeResult, 0, len(result.Results))
	for _, r := range result.Results {
		matches = append(matches, models.GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			Location:         models.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		})
	}
	return matches, nil
}

// SearchNearby lists places of one type within radiusMeters of center
func (c *Client) SearchNearby(ctx context.Context, center models.LatLng, radiusMeters int, category string) ([]models.Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%.6f,%.6f", center.Lat, center.Lng))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", category)

	var result nearbySearchResponse
	if err := c.getJSON(ctx, "/place/nearbysearch/json", params, &result); err != nil {
		return nil, err
	}
	if err := checkStatus(result.Status, result.ErrorMessage); err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(result.Results))
	for _, r := range result.Results {
		places = append(places, r.toPlace())
	}

	c.logger.Debug("nearby search",
		zap.String("type", category),
		zap.Int("results", len(places)))
	return places, nil
}

// FetchPhoto downloads the image behind a photo reference
func (c *Client) FetchPhoto(ctx context.Context, reference string, maxWidth int) ([]byte, string, error) {
	params := url.Values{}
	params.Set("photo_reference", reference)
	params.Set("maxwidth", strconv.Itoa(maxWidth))

	resp, err := c.get(ctx, "/place/photo", params)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read photo: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return data, contentType, nil
}
