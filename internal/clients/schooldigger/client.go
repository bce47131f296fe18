package schooldigger

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

	"github.com/listingkit/listingkit-backend/internal/models"
)

const DefaultBaseURL = "https://api.schooldigger.com/v2.3"

var (
	ErrMissingAPIKey = errors.New("schooldigger api key not configured")
	ErrMissingAppID  = errors.New("schooldigger app id not configured")
)

// APIError is a non-2xx answer from SchoolDigger
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("SchoolDigger API error (status %d): %s", e.StatusCode, e.Body)
}

// Client queries the SchoolDigger schools endpoint
type Client struct {
	appID      string
	appKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new SchoolDigger client. An empty baseURL uses DefaultBaseURL.
func NewClient(appID, appKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		appID:      appID,
		appKey:     appKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchSchools runs one search and returns the raw school list
func (c *Client) SearchSchools(ctx context.Context, filter models.SchoolFilter) (*SchoolList, error) {
	if c.appKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.appID == "" {
		return nil, ErrMissingAppID
	}

	params := url.Values{}
	params.Set("appID", c.appID)
	params.Set("appKey", c.appKey)
	setIf(params, "st", filter.State)
	setIf(params, "city", filter.City)
	setIf(params, "zip", filter.Zip)
	setIf(params, "address", filter.Address)
	if filter.RadiusMi > 0 {
		params.Set("radius", strconv.Itoa(filter.RadiusMi))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	setIf(params, "type", filter.SchoolType)
	setIf(params, "level", filter.GradeLevel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schools?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call SchoolDigger API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var list SchoolList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to parse SchoolDigger response: %w", err)
	}
	return &list, nil
}

func setIf(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
