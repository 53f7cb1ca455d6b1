package models

// TeacherResult holds per category places and the combined rank score of one generic report.
type TeacherResult struct {
	ID                  int64   `db:"id" json:"id"`
	GenericReportID     int64   `db:"generic_report_id" json:"generic_report_id"`
	EducationalPlace    *int    `db:"educational_place" json:"educational_place,omitempty"`
	ScientificPlace     *int    `db:"scientific_place" json:"scientific_place,omitempty"`
	OrganizationalPlace *int    `db:"organizational_place" json:"organizational_place,omitempty"`
	ScoresSum           float64 `db:"scores_sum" json:"scores_sum"`
	Place               *int    `db:"place" json:"place,omitempty"`

	ProfileID    int64          `db:"profile_id" json:"profile_id"`
	FullName     string         `db:"full_name" json:"full_name"`
	DepartmentID *int64         `db:"department_id" json:"department_id,omitempty"`
	FacultyID    *int64         `db:"faculty_id" json:"faculty_id,omitempty"`
	Cumulative   CumulativeMode `db:"cumulative_calculation" json:"cumulative_calculation"`
}

// PlaceFor returns the stored place for kind.
func (r *TeacherResult) PlaceFor(kind CategoryKind) *int {
	switch kind {
	case KindEducational:
		return r.EducationalPlace
	case KindScientific:
		return r.ScientificPlace
	case KindOrganizational:
		return r.OrganizationalPlace
	}
	return nil
}

// SetPlaceFor stores place for kind.
func (r *TeacherResult) SetPlaceFor(kind CategoryKind, place *int) {
	switch kind {
	case KindEducational:
		r.EducationalPlace = place
	case KindScientific:
		r.ScientificPlace = place
	case KindOrganizational:
		r.OrganizationalPlace = place
	}
}

// HeadResult ranks a head of department against the department they lead.
type HeadResult struct {
	ID              int64   `db:"id" json:"id"`
	TeacherResultID int64   `db:"teacher_result_id" json:"teacher_result_id"`
	PeerSum         float64 `db:"peer_sum" json:"peer_sum"`
	PeerCount       int     `db:"peer_count" json:"peer_count"`
	ScoresSum       float64 `db:"scores_sum" json:"scores_sum"`
	Place           *int    `db:"place" json:"place,omitempty"`

	FullName     string `db:"full_name" json:"full_name"`
	DepartmentID *int64 `db:"department_id" json:"department_id,omitempty"`
}

// FacultyResult averages the combined rank scores of a faculty's staff.
type FacultyResult struct {
	ID            int64   `db:"id" json:"id"`
	PeriodID      int64   `db:"period_id" json:"period_id"`
	FacultyID     int64   `db:"faculty_id" json:"faculty_id"`
	PlacesSum     float64 `db:"places_sum" json:"places_sum"`
	PlacesCount   int     `db:"places_count" json:"places_count"`
	PlacesAverage float64 `db:"places_average" json:"places_average"`
	Place         *int    `db:"place" json:"place,omitempty"`

	FacultyTitle string `db:"faculty_title" json:"faculty_title"`
}

// DeanResult combines a dean's own place with their faculty's place.
type DeanResult struct {
	ID              int64   `db:"id" json:"id"`
	TeacherResultID int64   `db:"teacher_result_id" json:"teacher_result_id"`
	SumPlace        float64 `db:"sum_place" json:"sum_place"`
	Place           *int    `db:"place" json:"place,omitempty"`

	FullName  string `db:"full_name" json:"full_name"`
	FacultyID *int64 `db:"faculty_id" json:"faculty_id,omitempty"`
}

// PlaceAssignment is a computed place for a stored row.
type PlaceAssignment struct {
	ID    int64 `db:"id"`
	Place int   `db:"place"`
}

// RankingLevel names a ranked table exposed on the read side.
type RankingLevel string

const (
	LevelTeachers       RankingLevel = "teachers"
	LevelHeads          RankingLevel = "heads"
	LevelFaculties      RankingLevel = "faculties"
	LevelDeans          RankingLevel = "deans"
	LevelEducational    RankingLevel = "educational"
	LevelScientific     RankingLevel = "scientific"
	LevelOrganizational RankingLevel = "organizational"
)

// RankingEntry is one row of a ranked table.
type RankingEntry struct {
	Place *int    `json:"place,omitempty"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
