package models

// LatLng is a geographic coordinate in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry wraps a place location the way the maps provider shapes it
type Geometry struct {
	Location LatLng `json:"location"`
}

// PlacePhoto is an opaque photo reference with its native dimensions
type PlacePhoto struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

// Place represents a point of interest returned by a nearby search
type Place struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	PrimaryType      string       `json:"primary_type,omitempty"`
	Types            []string     `json:"types"`
	Rating           *float64     `json:"rating,omitempty"`
	UserRatingsTotal *int         `json:"user_ratings_total,omitempty"`
	Vicinity         string       `json:"vicinity"`
	Geometry         Geometry     `json:"geometry"`
	Photos           []PlacePhoto `json:"photos,omitempty"`
	PriceLevel       *int         `json:"price_level,omitempty"`
	OpenNow          *bool        `json:"open_now,omitempty"`
	DistanceMeters   float64      `json:"distance_meters"`
}

// RatingValue returns the rating, treating a missing rating as 0
func (p *Place) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// GeocodeResult is a single match for a free-text location
type GeocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Location         LatLng `json:"location"`
}

// SearchLocation echoes the resolved search center
type SearchLocation struct {
	Address     string `json:"address"`
	Coordinates LatLng `json:"coordinates"`
}

// PlacesResult is the categorized outcome of one aggregation
type PlacesResult struct {
	Success      bool               `json:"success"`
	Location     SearchLocation     `json:"location"`
	Places       map[string][]Place `json:"places"`
	TotalCount   int                `json:"total_count"`
	RadiusMeters int                `json:"radius_meters"`
	SearchTypes  []string           `json:"search_types"`
}

// PlacePhotoData is a fetched photo ready for JSON transport
type PlacePhotoData struct {
	Base64      string `json:"base64"`
	ContentType string `json:"content_type"`
}
