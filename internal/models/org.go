package models

// CumulativeMode marks supervisory positions whose generic result is blended with their peer group.
type CumulativeMode string

const (
	CumulativeNone         CumulativeMode = ""
	CumulativeByDepartment CumulativeMode = "department"
	CumulativeByFaculty    CumulativeMode = "faculty"
)

// Valid reports whether m is one of the known modes.
func (m CumulativeMode) Valid() bool {
	switch m {
	case CumulativeNone, CumulativeByDepartment, CumulativeByFaculty:
		return true
	}
	return false
}

// Faculty groups departments.
type Faculty struct {
	ID    int64  `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}

// Department belongs to at most one faculty.
type Department struct {
	ID        int64  `db:"id" json:"id"`
	FacultyID *int64 `db:"faculty_id" json:"faculty_id,omitempty"`
	Title     string `db:"title" json:"title"`
}

// Position is a staff role; heads and deans carry a cumulative mode.
type Position struct {
	ID         int64          `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	Cumulative CumulativeMode `db:"cumulative_calculation" json:"cumulative_calculation"`
}

// Profile is a staff member with the organisational fields resolved through joins.
type Profile struct {
	ID           int64          `db:"id" json:"id"`
	FullName     string         `db:"full_name" json:"full_name"`
	DepartmentID *int64         `db:"department_id" json:"department_id,omitempty"`
	PositionID   *int64         `db:"position_id" json:"position_id,omitempty"`
	FacultyID    *int64         `db:"faculty_id" json:"faculty_id,omitempty"`
	Cumulative   CumulativeMode `db:"cumulative_calculation" json:"cumulative_calculation"`
}
