package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

// FacultyResultRepository stores per faculty averages of combined rank scores.
type FacultyResultRepository struct {
	db *sqlx.DB
}

// NewFacultyResultRepository constructs the repository.
func NewFacultyResultRepository(db *sqlx.DB) *FacultyResultRepository {
	return &FacultyResultRepository{db: db}
}

// Upsert stores the faculty figures keyed by (period, faculty).
func (r *FacultyResultRepository) Upsert(ctx context.Context, result *models.FacultyResult) error {
	const query = `INSERT INTO faculty_results (period_id, faculty_id, places_sum, places_count, places_average)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (period_id, faculty_id)
DO UPDATE SET places_sum = EXCLUDED.places_sum, places_count = EXCLUDED.places_count, places_average = EXCLUDED.places_average
RETURNING id`
	if err := r.db.GetContext(ctx, &result.ID, query, result.PeriodID, result.FacultyID, result.PlacesSum, result.PlacesCount, result.PlacesAverage); err != nil {
		return fmt.Errorf("upsert faculty result: %w", err)
	}
	return nil
}

// ListByPeriod returns the period's faculty results in primary key order.
func (r *FacultyResultRepository) ListByPeriod(ctx context.Context, periodID int64) ([]models.FacultyResult, error) {
	const query = `SELECT fr.id, fr.period_id, fr.faculty_id, fr.places_sum, fr.places_count, fr.places_average, fr.place, f.title AS faculty_title
FROM faculty_results fr
JOIN faculties f ON f.id = fr.faculty_id
WHERE fr.period_id = $1
ORDER BY fr.id`
	var results []models.FacultyResult
	if err := r.db.SelectContext(ctx, &results, query, periodID); err != nil {
		return nil, fmt.Errorf("list faculty results: %w", err)
	}
	return results, nil
}

// SetPlaces stores faculty places.
func (r *FacultyResultRepository) SetPlaces(ctx context.Context, assignments []models.PlaceAssignment) error {
	return setPlaces(ctx, r.db, "faculty_results", assignments)
}
