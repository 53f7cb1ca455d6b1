package scoring

import "github.com/noah-isme/academic-rating/internal/models"

// Normalizer corrects raw scores for part-time employment and months worked.
type Normalizer struct {
	// ApplyAssignmentShare divides by the employment share before the duration correction.
	ApplyAssignmentShare bool
}

// Adjust returns the adjusted result for raw. It is 0 when the report is missing,
// the duration is not positive, or the share is 0 while the share correction applies.
func (n Normalizer) Adjust(raw float64, generic *models.GenericReport) float64 {
	if generic == nil || generic.AssignmentDuration <= 0 {
		return 0
	}
	v := raw
	if n.ApplyAssignmentShare {
		if generic.AssignmentShare <= 0 {
			return 0
		}
		v = Round2(raw / generic.AssignmentShare)
	}
	return Round2(v / (generic.AssignmentDuration / 10))
}
