package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

// HeadResultRepository stores heads of departments aggregates.
type HeadResultRepository struct {
	db *sqlx.DB
}

// NewHeadResultRepository constructs the repository.
func NewHeadResultRepository(db *sqlx.DB) *HeadResultRepository {
	return &HeadResultRepository{db: db}
}

// Upsert stores the aggregate keyed by the head's teacher result.
func (r *HeadResultRepository) Upsert(ctx context.Context, result *models.HeadResult) error {
	const query = `INSERT INTO head_results (teacher_result_id, peer_sum, peer_count, scores_sum)
VALUES ($1, $2, $3, $4)
ON CONFLICT (teacher_result_id)
DO UPDATE SET peer_sum = EXCLUDED.peer_sum, peer_count = EXCLUDED.peer_count, scores_sum = EXCLUDED.scores_sum
RETURNING id`
	if err := r.db.GetContext(ctx, &result.ID, query, result.TeacherResultID, result.PeerSum, result.PeerCount, result.ScoresSum); err != nil {
		return fmt.Errorf("upsert head result: %w", err)
	}
	return nil
}

// ListByPeriod returns the period's head results in primary key order.
func (r *HeadResultRepository) ListByPeriod(ctx context.Context, periodID int64) ([]models.HeadResult, error) {
	const query = `SELECT h.id, h.teacher_result_id, h.peer_sum, h.peer_count, h.scores_sum, h.place, p.full_name, p.department_id
FROM head_results h
JOIN teacher_results tr ON tr.id = h.teacher_result_id
JOIN generic_reports g ON g.id = tr.generic_report_id
JOIN profiles p ON p.id = g.profile_id
WHERE g.period_id = $1
ORDER BY h.id`
	var results []models.HeadResult
	if err := r.db.SelectContext(ctx, &results, query, periodID); err != nil {
		return nil, fmt.Errorf("list head results: %w", err)
	}
	return results, nil
}

// ReplacePlaces removes the period's head results not backed by a teacher result in keep
// and stores places for the rest. It returns the number of rows removed.
func (r *HeadResultRepository) ReplacePlaces(ctx context.Context, periodID int64, keep []int64, assignments []models.PlaceAssignment) (int64, error) {
	return replacePlaces(ctx, r.db, "head_results", periodID, keep, assignments)
}
