package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/listingkit/listingkit-backend/internal/places"
	"github.com/listingkit/listingkit-backend/internal/service"
	"github.com/listingkit/listingkit-backend/pkg/response"
)

const maxPerTypeLimit = 20

// PlacesHandler handles HTTP requests for nearby places
type PlacesHandler struct {
	service *service.PlacesService
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(service *service.PlacesService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

// GetPlaces handles GET /api/places?location=&radius=&types=&limit=
func (h *PlacesHandler) GetPlaces(c *gin.Context) {
	q := places.Query{Location: c.Query("location")}

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.Atoi(radiusStr)
		if err != nil {
			response.BadRequest(c, "Radius must be a whole number of meters")
			return
		}
		if radius == 0 {
			// 0 would otherwise fall back to the default radius
			radius = -1
		}
		q.RadiusMeters = radius
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxPerTypeLimit {
			response.BadRequest(c, "Limit must be a number between 1 and 20")
			return
		}
		q.PerCategoryQuota = limit
	}

	if types := c.Query("types"); types != "" {
		q.Categories = strings.Split(types, ",")
	}

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		writePlacesError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// GetPhoto handles GET /api/places/photo?reference=&maxwidth=
func (h *PlacesHandler) GetPhoto(c *gin.Context) {
	maxWidth := 0
	if widthStr := c.Query("maxwidth"); widthStr != "" {
		w, err := strconv.Atoi(widthStr)
		if err != nil || w < 1 || w > 1600 {
			response.BadRequest(c, "maxwidth must be a number between 1 and 1600")
			return
		}
		maxWidth = w
	}

	photo, err := h.service.Photo(c.Request.Context(), c.Query("reference"), maxWidth)
	if err != nil {
		writePlacesError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"photo":   photo,
	})
}

// placesStatus maps an aggregation error kind to an HTTP status
func placesStatus(err error) int {
	switch {
	case errors.Is(err, places.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, places.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, places.ErrUpstreamSearchFailed):
		var pe *places.Error
		if errors.As(err, &pe) && pe.Status >= 400 {
			return pe.Status
		}
	}
	return http.StatusInternalServerError
}

func writePlacesError(c *gin.Context, err error) {
	status := placesStatus(err)

	var pe *places.Error
	if !errors.As(err, &pe) {
		response.InternalError(c, "Failed to fetch places", err)
		return
	}
	response.Error(c, status, pe.Message, pe.Err)
}
