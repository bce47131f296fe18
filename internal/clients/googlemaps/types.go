package googlemaps

import "github.com/listingkit/listingkit-backend/internal/models"

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
		PlaceID          string   `json:"place_id"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type photo struct {
	Height         int    `json:"height"`
	Width          int    `json:"width"`
	PhotoReference string `json:"photo_reference"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Types            []string `json:"types"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	Vicinity         string   `json:"vicinity"`
	Geometry         geometry `json:"geometry"`
	Photos           []photo  `json:"photos,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now,omitempty"`
	} `json:"opening_hours,omitempty"`
}

type nearbySearchResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

func (r *placeResult) toPlace() models.Place {
	p := models.Place{
		ID:               r.PlaceID,
		Name:             r.Name,
		Types:            r.Types,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		Vicinity:         r.Vicinity,
		Geometry: models.Geometry{
			Location: models.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		},
		PriceLevel: r.PriceLevel,
	}
	if p.Types == nil {
		p.Types = []string{}
	}
	if r.OpeningHours != nil {
		p.OpenNow = r.OpeningHours.OpenNow
	}
	for i, ph := range r.Photos {
		if i == maxPhotosPerPlace {
			break
		}
		p.Photos = append(p.Photos, models.PlacePhoto{
			PhotoReference: ph.PhotoReference,
			Width:          ph.Width,
			Height:         ph.Height,
		})
	}
	return p
}
