package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/service"
	"github.com/listingkit/listingkit-backend/pkg/response"
)

// SchoolHandler handles HTTP requests for school lookups
type SchoolHandler struct {
	service *service.SchoolService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(service *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{service: service}
}

// GetSchools handles GET /api/schools
func (h *SchoolHandler) GetSchools(c *gin.Context) {
	filter := models.SchoolFilter{
		Zip:        c.Query("zip"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		Address:    c.Query("address"),
		SchoolType: c.Query("type"),
		GradeLevel: c.Query("grade"),
	}

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.Atoi(radiusStr)
		if err != nil || radius == 0 {
			response.BadRequest(c, "Radius must be a number between 1 and 50 miles")
			return
		}
		filter.RadiusMi = radius
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit == 0 {
			response.BadRequest(c, "Limit must be a number between 1 and 25")
			return
		}
		filter.Limit = limit
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		var se *service.SchoolError
		if errors.As(err, &se) {
			response.ErrorWithDetails(c, se.Status, se.Message, se.Details)
			return
		}
		response.InternalError(c, "Failed to fetch schools", err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}
