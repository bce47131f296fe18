package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/listingkit/listingkit-backend/internal/clients/schooldigger"
	"github.com/listingkit/listingkit-backend/internal/models"
)

const (
	defaultSchoolRadiusMi = 5
	defaultSchoolLimit    = 6
)

// SchoolError carries the HTTP status a school search failure maps to
type SchoolError struct {
	Status  int
	Message string
	Details string
}

func (e *SchoolError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// SchoolSearcher is the school-data provider surface
type SchoolSearcher interface {
	SearchSchools(ctx context.Context, filter models.SchoolFilter) (*schooldigger.SchoolList, error)
}

// SchoolService handles school lookups
type SchoolService struct {
	client SchoolSearcher
}

// NewSchoolService creates a new school service
func NewSchoolService(client SchoolSearcher) *SchoolService {
	return &SchoolService{client: client}
}

// ValidateFilter applies defaults and range checks to a school filter
func ValidateFilter(filter *models.SchoolFilter) error {
	if !filter.HasLocation() {
		return &SchoolError{Status: http.StatusBadRequest, Message: "At least one location parameter is required (zip, city, state, or address)"}
	}
	if filter.RadiusMi == 0 {
		filter.RadiusMi = defaultSchoolRadiusMi
	}
	if filter.RadiusMi < 1 || filter.RadiusMi > 50 {
		return &SchoolError{Status: http.StatusBadRequest, Message: "Radius must be a number between 1 and 50 miles"}
	}
	if filter.Limit == 0 {
		filter.Limit = defaultSchoolLimit
	}
	if filter.Limit < 1 || filter.Limit > 25 {
		return &SchoolError{Status: http.StatusBadRequest, Message: "Limit must be a number between 1 and 25"}
	}
	return nil
}

// Search validates the filter, queries the provider and reshapes the result
func (s *SchoolService) Search(ctx context.Context, filter models.SchoolFilter) (*models.SchoolsResult, error) {
	if err := ValidateFilter(&filter); err != nil {
		return nil, err
	}

	list, err := s.client.SearchSchools(ctx, filter)
	if err != nil {
		return nil, classifySchoolError(err)
	}

	schools := make([]models.School, 0, len(list.SchoolList))
	for i := range list.SchoolList {
		schools = append(schools, toSchool(&list.SchoolList[i]))
	}

	total := list.NumberOfSchools
	if total == 0 {
		total = len(schools)
	}
	pages := list.NumberOfPages
	if pages == 0 {
		pages = 1
	}

	return &models.SchoolsResult{
		Success:      true,
		Schools:      schools,
		TotalCount:   total,
		SearchParams: filter,
		Pagination: models.Pagination{
			CurrentPage: 1,
			TotalPages:  pages,
			HasMore:     pages > 1,
		},
	}, nil
}

func classifySchoolError(err error) error {
	if errors.Is(err, schooldigger.ErrMissingAPIKey) {
		return &SchoolError{Status: http.StatusInternalServerError, Message: "SchoolDigger API key not configured"}
	}
	if errors.Is(err, schooldigger.ErrMissingAppID) {
		return &SchoolError{Status: http.StatusInternalServerError, Message: "SchoolDigger App ID not configured"}
	}

	var apiErr *schooldigger.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			return &SchoolError{Status: http.StatusNotFound, Message: "No schools found for the specified location"}
		case http.StatusUnauthorized:
			return &SchoolError{Status: http.StatusUnauthorized, Message: "Invalid API key"}
		}
		return &SchoolError{
			Status:  apiErr.StatusCode,
			Message: "Failed to fetch schools from SchoolDigger API",
			Details: apiErr.Body,
		}
	}

	return &SchoolError{Status: http.StatusInternalServerError, Message: "Failed to fetch schools", Details: err.Error()}
}

func toSchool(d *schooldigger.SchoolData) models.School {
	school := models.School{
		ID:          d.SchoolID,
		Name:        d.SchoolName,
		Phone:       d.Phone,
		Website:     d.URL,
		SchoolLevel: d.SchoolLevel,
		IsPrivate:   d.IsPrivate,
		IsCharter:   d.IsCharterSchool == "Yes",
		IsMagnet:    d.IsMagnetSchool == "Yes",
		IsVirtual:   d.IsVirtualSchool == "Yes",
		Grades:      models.GradeSpan{Low: d.LowGrade, High: d.HighGrade},
		Performance: models.Performance{
			RankHistory:  make([]models.RankEntry, 0, len(d.RankHistory)),
			RankMovement: d.RankMovement,
		},
	}

	if a := d.Address; a != nil {
		school.Address = models.SchoolAddress{Street: a.Street, City: a.City, State: a.State, Zip: a.Zip}
		if a.LatLong != nil {
			school.Address.Coordinates = &models.LatLng{Lat: a.LatLong.Latitude, Lng: a.LatLong.Longitude}
		}
	}
	if dist := d.District; dist != nil {
		school.District = models.SchoolDistrict{ID: dist.DistrictID, Name: dist.DistrictName, Website: dist.URL}
	}
	for _, r := range d.RankHistory {
		school.Performance.RankHistory = append(school.Performance.RankHistory, models.RankEntry{Year: r.Year, Rank: r.Rank, RankOf: r.RankOf})
	}

	// the provider lists the most recent year first
	if len(d.SchoolYearlyDetails) > 0 {
		y := d.SchoolYearlyDetails[0]
		school.Enrollment = models.Enrollment{
			Total:               y.NumberOfStudents,
			StudentTeacherRatio: y.PupilTeacherRatio,
			FreeLunch:           y.PercentFreeDiscLunch,
		}
		school.Demographics = &models.Demographics{
			Year:                   y.Year,
			TotalStudents:          y.NumberOfStudents,
			PercentFreeLunch:       y.PercentFreeDiscLunch,
			PercentAfricanAmerican: y.PercentofAfricanAmericanStudents,
			PercentAsian:           y.PercentofAsianStudents,
			PercentHispanic:        y.PercentofHispanicStudents,
			PercentWhite:           y.PercentofWhiteStudents,
			TeachersFulltime:       y.TeachersFulltime,
			PupilTeacherRatio:      y.PupilTeacherRatio,
		}
	}
	return school
}
