package schooldigger

// SchoolList is the body of GET /schools
type SchoolList struct {
	NumberOfSchools int          `json:"numberOfSchools"`
	NumberOfPages   int          `json:"numberOfPages"`
	SchoolList      []SchoolData `json:"schoolList"`
}

// SchoolData is one school as SchoolDigger returns it
type SchoolData struct {
	SchoolID   string `json:"schoolid"`
	SchoolName string `json:"schoolName"`
	Phone      string `json:"phone"`
	URL        string `json:"url"`
	Address    *struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
		LatLong *struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"latLong"`
	} `json:"address"`
	District *struct {
		DistrictID   string `json:"districtID"`
		DistrictName string `json:"districtName"`
		URL          string `json:"url"`
	} `json:"district"`
	SchoolLevel         string         `json:"schoolLevel"`
	IsPrivate           bool           `json:"isPrivate"`
	IsCharterSchool     string         `json:"isCharterSchool"`
	IsMagnetSchool      string         `json:"isMagnetSchool"`
	IsVirtualSchool     string         `json:"isVirtualSchool"`
	LowGrade            string         `json:"lowGrade"`
	HighGrade           string         `json:"highGrade"`
	SchoolYearlyDetails []YearlyDetail `json:"schoolYearlyDetails"`
	RankHistory         []Rank         `json:"rankHistory"`
	RankMovement        int            `json:"rankMovement"`
}

// YearlyDetail is one year of enrollment and demographic data
type YearlyDetail struct {
	Year                             int     `json:"year"`
	NumberOfStudents                 int     `json:"numberOfStudents"`
	PupilTeacherRatio                float64 `json:"pupilTeacherRatio"`
	PercentFreeDiscLunch             float64 `json:"percentFreeDiscLunch"`
	PercentofAfricanAmericanStudents float64 `json:"percentofAfricanAmericanStudents"`
	PercentofAsianStudents           float64 `json:"percentofAsianStudents"`
	PercentofHispanicStudents        float64 `json:"percentofHispanicStudents"`
	PercentofWhiteStudents           float64 `json:"percentofWhiteStudents"`
	TeachersFulltime                 float64 `json:"teachersFulltime"`
}

// Rank is one year of statewide ranking
type Rank struct {
	Year   int `json:"year"`
	Rank   int `json:"rank"`
	RankOf int `json:"rankOf"`
}
