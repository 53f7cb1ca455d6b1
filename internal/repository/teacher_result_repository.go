package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

// TeacherResultRepository stores per category places and combined rank scores.
type TeacherResultRepository struct {
	db *sqlx.DB
}

// NewTeacherResultRepository constructs the repository.
func NewTeacherResultRepository(db *sqlx.DB) *TeacherResultRepository {
	return &TeacherResultRepository{db: db}
}

// Upsert stores places and the scores sum keyed by generic report.
func (r *TeacherResultRepository) Upsert(ctx context.Context, result *models.TeacherResult) error {
	const query = `INSERT INTO teacher_results (generic_report_id, educational_place, scientific_place, organizational_place, scores_sum)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (generic_report_id)
DO UPDATE SET educational_place = EXCLUDED.educational_place, scientific_place = EXCLUDED.scientific_place, organizational_place = EXCLUDED.organizational_place, scores_sum = EXCLUDED.scores_sum
RETURNING id`
	if err := r.db.GetContext(ctx, &result.ID, query, result.GenericReportID, result.EducationalPlace, result.ScientificPlace, result.OrganizationalPlace, result.ScoresSum); err != nil {
		return fmt.Errorf("upsert teacher result: %w", err)
	}
	return nil
}

// ListByPeriod returns the period's teacher results joined with profile data, in primary key order.
func (r *TeacherResultRepository) ListByPeriod(ctx context.Context, periodID int64) ([]models.TeacherResult, error) {
	const query = `SELECT tr.id, tr.generic_report_id, tr.educational_place, tr.scientific_place, tr.organizational_place, tr.scores_sum, tr.place,
       p.id AS profile_id, p.full_name, p.department_id, d.faculty_id, COALESCE(pos.cumulative_calculation, '') AS cumulative_calculation
FROM teacher_results tr
JOIN generic_reports g ON g.id = tr.generic_report_id
JOIN profiles p ON p.id = g.profile_id
LEFT JOIN departments d ON d.id = p.department_id
LEFT JOIN positions pos ON pos.id = p.position_id
WHERE g.period_id = $1
ORDER BY tr.id`
	var results []models.TeacherResult
	if err := r.db.SelectContext(ctx, &results, query, periodID); err != nil {
		return nil, fmt.Errorf("list teacher results: %w", err)
	}
	return results, nil
}

// SetPlaces stores overall places.
func (r *TeacherResultRepository) SetPlaces(ctx context.Context, assignments []models.PlaceAssignment) error {
	return setPlaces(ctx, r.db, "teacher_results", assignments)
}
