package models

// SchoolFilter holds the query parameters of a school search
type SchoolFilter struct {
	Zip        string `json:"zip,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Address    string `json:"address,omitempty"`
	RadiusMi   int    `json:"radius_miles"`
	Limit      int    `json:"limit"`
	SchoolType string `json:"school_type,omitempty"`
	GradeLevel string `json:"grade_level,omitempty"`
}

// HasLocation reports whether at least one location field is set
func (f *SchoolFilter) HasLocation() bool {
	return f.Zip != "" || f.City != "" || f.State != "" || f.Address != ""
}

// SchoolAddress is the postal address of a school
type SchoolAddress struct {
	Street      string  `json:"street"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Coordinates *LatLng `json:"coordinates"`
}

// SchoolDistrict identifies the district a school belongs to
type SchoolDistrict struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website"`
}

// GradeSpan is the lowest and highest grade taught
type GradeSpan struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// Enrollment summarizes the most recent yearly record
type Enrollment struct {
	Total               int     `json:"total"`
	StudentTeacherRatio float64 `json:"student_teacher_ratio"`
	FreeLunch           float64 `json:"free_lunch"`
}

// RankEntry is one year of statewide ranking
type RankEntry struct {
	Year   int `json:"year,omitempty"`
	Rank   int `json:"rank,omitempty"`
	RankOf int `json:"rank_of,omitempty"`
}

// Performance groups ranking information
type Performance struct {
	RankHistory  []RankEntry `json:"rank_history"`
	RankMovement int         `json:"rank_movement"`
}

// Demographics is the student body breakdown for the most recent year
type Demographics struct {
	Year                   int     `json:"year,omitempty"`
	TotalStudents          int     `json:"total_students"`
	PercentFreeLunch       float64 `json:"percent_free_lunch"`
	PercentAfricanAmerican float64 `json:"percent_african_american"`
	PercentAsian           float64 `json:"percent_asian"`
	PercentHispanic        float64 `json:"percent_hispanic"`
	PercentWhite           float64 `json:"percent_white"`
	TeachersFulltime       float64 `json:"teachers_fulltime"`
	PupilTeacherRatio      float64 `json:"pupil_teacher_ratio"`
}

// School is a reshaped school-data record
type School struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone,omitempty"`
	Website      string         `json:"website,omitempty"`
	Address      SchoolAddress  `json:"address"`
	District     SchoolDistrict `json:"district"`
	SchoolLevel  string         `json:"school_level"`
	IsPrivate    bool           `json:"is_private"`
	IsCharter    bool           `json:"is_charter"`
	IsMagnet     bool           `json:"is_magnet"`
	IsVirtual    bool           `json:"is_virtual"`
	Grades       GradeSpan      `json:"grades"`
	Enrollment   Enrollment     `json:"enrollment"`
	Performance  Performance    `json:"performance"`
	Demographics *Demographics  `json:"demographics"`
}

// Pagination describes the upstream page window
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
}

// SchoolsResult is the response of a school search
type SchoolsResult struct {
	Success      bool         `json:"success"`
	Schools      []School     `json:"schools"`
	TotalCount   int          `json:"total_count"`
	SearchParams SchoolFilter `json:"search_params"`
	Pagination   Pagination   `json:"pagination"`
}
