package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

// DeanResultRepository stores deans' combined places.
type DeanResultRepository struct {
	db *sqlx.DB
}

// NewDeanResultRepository constructs the repository.
func NewDeanResultRepository(db *sqlx.DB) *DeanResultRepository {
	return &DeanResultRepository{db: db}
}

// Upsert stores the dean's sum place keyed by teacher result.
func (r *DeanResultRepository) Upsert(ctx context.Context, result *models.DeanResult) error {
	const query = `INSERT INTO dean_results (teacher_result_id, sum_place)
VALUES ($1, $2)
ON CONFLICT (teacher_result_id)
DO UPDATE SET sum_place = EXCLUDED.sum_place
RETURNING id`
	if err := r.db.GetContext(ctx, &result.ID, query, result.TeacherResultID, result.SumPlace); err != nil {
		return fmt.Errorf("upsert dean result: %w", err)
	}
	return nil
}

// ListByPeriod returns the period's dean results in primary key order.
func (r *DeanResultRepository) ListByPeriod(ctx context.Context, periodID int64) ([]models.DeanResult, error) {
	const query = `SELECT dr.id, dr.teacher_result_id, dr.sum_place, dr.place, p.full_name, d.faculty_id
FROM dean_results dr
JOIN teacher_results tr ON tr.id = dr.teacher_result_id
JOIN generic_reports g ON g.id = tr.generic_report_id
JOIN profiles p ON p.id = g.profile_id
LEFT JOIN departments d ON d.id = p.department_id
WHERE g.period_id = $1
ORDER BY dr.id`
	var results []models.DeanResult
	if err := r.db.SelectContext(ctx, &results, query, periodID); err != nil {
		return nil, fmt.Errorf("list dean results: %w", err)
	}
	return results, nil
}

// ReplacePlaces removes the period's dean results not backed by a teacher result in keep
// and stores places for the rest. It returns the number of rows removed.
func (r *DeanResultRepository) ReplacePlaces(ctx context.Context, periodID int64, keep []int64, assignments []models.PlaceAssignment) (int64, error) {
	return replacePlaces(ctx, r.db, "dean_results", periodID, keep, assignments)
}
