package service

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/places"
)

const defaultPhotoMaxWidth = 400

// MapsClient is the maps provider surface used by the places routes
type MapsClient interface {
	places.NearbyGeocoder
	FetchPhoto(ctx context.Context, reference string, maxWidth int) ([]byte, string, error)
	Configured() bool
}

// PlacesService handles nearby-places searches and photo lookups
type PlacesService struct {
	client       MapsClient
	aggregator   *places.Aggregator
	perTypeQuota int
	timeout      time.Duration
	logger       *zap.Logger
}

// NewPlacesService creates a new places service
func NewPlacesService(client MapsClient, perTypeQuota int, timeout time.Duration, logger *zap.Logger) *PlacesService {
	return &PlacesService{
		client:       client,
		aggregator:   places.NewAggregator(client, timeout, logger),
		perTypeQuota: perTypeQuota,
		timeout:      timeout,
		logger:       logger,
	}
}

func notConfigured() error {
	return &places.Error{Kind: places.ErrConfigurationMissing, Message: "Google Maps API key not configured"}
}

// Search aggregates nearby places. A zero quota uses the configured default.
func (s *PlacesService) Search(ctx context.Context, q places.Query) (*models.PlacesResult, error) {
	if !s.client.Configured() {
		return nil, notConfigured()
	}
	if q.PerCategoryQuota == 0 {
		q.PerCategoryQuota = s.perTypeQuota
	}

	result, err := s.aggregator.Aggregate(ctx, q)
	if err != nil {
		return nil, err
	}

	s.logger.Info("places search",
		zap.String("location", q.Location),
		zap.Int("radius", result.RadiusMeters),
		zap.Int("total", result.TotalCount))
	return result, nil
}

// Photo fetches a place photo and encodes it for JSON transport
func (s *PlacesService) Photo(ctx context.Context, reference string, maxWidth int) (*models.PlacePhotoData, error) {
	if reference == "" {
		return nil, &places.Error{Kind: places.ErrInvalidInput, Message: "Photo reference parameter is required"}
	}
	if !s.client.Configured() {
		return nil, notConfigured()
	}
	if maxWidth <= 0 {
		maxWidth = defaultPhotoMaxWidth
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data, contentType, err := s.client.FetchPhoto(ctx, reference, maxWidth)
	if err != nil {
		e := &places.Error{Kind: places.ErrUpstreamSearchFailed, Message: "Failed to fetch photo from Google Places API", Err: err}
		var sc places.StatusCoder
		if errors.As(err, &sc) {
			e.Status = sc.StatusCode()
		}
		return nil, e
	}

	return &models.PlacePhotoData{
		Base64:      base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}, nil
}
