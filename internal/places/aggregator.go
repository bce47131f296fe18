package places

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/spatial"
)

const (
	DefaultRadiusMeters = 5000
	MinRadiusMeters     = 100
	MaxRadiusMeters     = 50000
)

// DefaultCategories are searched when the caller names none
var DefaultCategories = []string{"restaurant", "park", "tourist_attraction"}

// Geocoder resolves free text to coordinates, best match first.
// No match is an empty slice, not an error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]models.GeocodeResult, error)
}

// NearbySearcher lists places of one category around a center
type NearbySearcher interface {
	SearchNearby(ctx context.Context, center models.LatLng, radiusMeters int, category string) ([]models.Place, error)
}

// Query is the input of one aggregation
type Query struct {
	Location         string
	RadiusMeters     int // 0 means DefaultRadiusMeters
	Categories       []string
	PerCategoryQuota int
}

// Aggregator runs one nearby search per category and merges the results
type Aggregator struct {
	upstream NearbyGeocoder
	timeout  time.Duration
	logger   *zap.Logger
}

// NearbyGeocoder is the full upstream surface the aggregator needs
type NearbyGeocoder interface {
	Geocoder
	NearbySearcher
}

// NewAggregator creates an aggregator. timeout bounds each outbound call
// independently; zero disables it.
func NewAggregator(upstream NearbyGeocoder, timeout time.Duration, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{upstream: upstream, timeout: timeout, logger: logger}
}

// NormalizeCategories trims tags, drops empties and duplicates, and falls
// back to DefaultCategories when nothing is left.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultCategories...)
	}
	return out
}

func (q *Query) normalize() error {
	q.Location = strings.TrimSpace(q.Location)
	if q.Location == "" {
		return invalidInput("Location is required (can be address, zip code, or neighborhood)")
	}
	if q.RadiusMeters == 0 {
		q.RadiusMeters = DefaultRadiusMeters
	}
	if q.RadiusMeters < MinRadiusMeters || q.RadiusMeters > MaxRadiusMeters {
		return invalidInput(fmt.Sprintf("Radius must be between %d and %d meters", MinRadiusMeters, MaxRadiusMeters))
	}
	if q.PerCategoryQuota <= 0 {
		return invalidInput("Per-category limit must be a positive number")
	}
	q.Categories = NormalizeCategories(q.Categories)
	return nil
}

func (a *Aggregator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// Aggregate geocodes the location, searches every category around it and
// returns deduplicated, quota-limited places keyed by primary type.
// Any upstream failure fails the whole call.
func (a *Aggregator) Aggregate(ctx context.Context, q Query) (*models.PlacesResult, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}

	geoCtx, cancel := a.withTimeout(ctx)
	matches, err := a.upstream.Geocode(geoCtx, q.Location)
	cancel()
	if err != nil {
		return nil, upstreamFailed("Failed to geocode location", err)
	}
	if len(matches) == 0 {
		return nil, &Error{Kind: ErrLocationNotFound, Message: "Location not found"}
	}
	center := matches[0]

	batches := make([]batch, len(q.Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range q.Categories {
		g.Go(func() error {
			callCtx, cancel := a.withTimeout(gctx)
			defer cancel()

			found, err := a.upstream.SearchNearby(callCtx, center.Location, q.RadiusMeters, category)
			if err != nil {
				return fmt.Errorf("category %q: %w", category, err)
			}
			batches[i] = batch{category: category, places: found}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Warn("nearby search failed",
			zap.String("location", q.Location),
			zap.Error(err))
		return nil, upstreamFailed("Failed to fetch places", err)
	}

	byType, total := merge(q.Categories, batches, q.PerCategoryQuota)
	for _, list := range byType {
		for i := range list {
			loc := list[i].Geometry.Location
			d := spatial.HaversineDistance(center.Location.Lat, center.Location.Lng, loc.Lat, loc.Lng)
			list[i].DistanceMeters = math.Round(d*10) / 10
		}
	}

	a.logger.Debug("places aggregated",
		zap.String("address", center.FormattedAddress),
		zap.Strings("types", q.Categories),
		zap.Int("accepted", total))

	return &models.PlacesResult{
		Success: true,
		Location: models.SearchLocation{
			Address:     center.FormattedAddress,
			Coordinates: center.Location,
		},
		Places:       byType,
		TotalCount:   total,
		RadiusMeters: q.RadiusMeters,
		SearchTypes:  q.Categories,
	}, nil
}
