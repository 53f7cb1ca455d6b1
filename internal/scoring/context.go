package scoring

import "github.com/noah-isme/academic-rating/internal/models"

// Context carries the cross-record values some rule items depend on.
type Context struct {
	AnnualWorkload  float64
	AssignmentShare float64
	StudentsRating  float64
}

// NewContext collects scoring inputs from the owning report and its period.
// Missing records leave the corresponding values at zero.
func NewContext(generic *models.GenericReport, period *models.ReportPeriod) Context {
	var c Context
	if generic != nil {
		c.AssignmentShare = generic.AssignmentShare
		c.StudentsRating = generic.StudentsRating
	}
	if period != nil {
		c.AnnualWorkload = period.AnnualWorkload
	}
	return c
}
