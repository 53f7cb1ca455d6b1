package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// CategoryKind is the closed set of work categories a staff member reports on.
type CategoryKind string

const (
	KindEducational    CategoryKind = "educational"
	KindScientific     CategoryKind = "scientific"
	KindOrganizational CategoryKind = "organizational"
)

// CategoryKinds lists every kind in canonical order.
var CategoryKinds = []CategoryKind{KindEducational, KindScientific, KindOrganizational}

// Valid reports whether k is a known category.
func (k CategoryKind) Valid() bool {
	switch k {
	case KindEducational, KindScientific, KindOrganizational:
		return true
	}
	return false
}

// GenericReport holds per person, per period data shared by all category reports.
type GenericReport struct {
	ID                 int64     `db:"id" json:"id"`
	ProfileID          int64     `db:"profile_id" json:"profile_id"`
	PeriodID           int64     `db:"period_id" json:"period_id"`
	AssignmentDuration float64   `db:"assignment_duration" json:"assignment_duration"`
	AssignmentShare    float64   `db:"assignment_share" json:"assignment_share"`
	StudentsRating     float64   `db:"students_rating" json:"students_rating"`
	IsClosed           bool      `db:"is_closed" json:"is_closed"`
	// IndividualResult is the person's own weighted sum before any peer blending.
	IndividualResult   float64   `db:"individual_result" json:"individual_result"`
	Result             float64   `db:"result" json:"result"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Default assignment values for newly created generic reports.
const (
	DefaultAssignmentDuration = 10
	DefaultAssignmentShare    = 1
)

// CategoryReport stores one category's typed input as JSON next to its derived scores.
type CategoryReport struct {
	ID              int64          `db:"id" json:"id"`
	GenericReportID int64          `db:"generic_report_id" json:"generic_report_id"`
	Kind            CategoryKind   `db:"kind" json:"kind"`
	Payload         types.JSONText `db:"payload" json:"payload"`
	Result          float64        `db:"result" json:"result"`
	AdjustedResult  float64        `db:"adjusted_result" json:"adjusted_result"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}
