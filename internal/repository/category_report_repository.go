package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

const categoryColumns = `id, generic_report_id, kind, payload, result, adjusted_result, created_at, updated_at`

// CategoryReportRepository persists category inputs and their derived scores.
type CategoryReportRepository struct {
	db *sqlx.DB
}

// NewCategoryReportRepository constructs the repository.
func NewCategoryReportRepository(db *sqlx.DB) *CategoryReportRepository {
	return &CategoryReportRepository{db: db}
}

// ListByGeneric returns the category reports attached to a generic report.
func (r *CategoryReportRepository) ListByGeneric(ctx context.Context, genericID int64) ([]models.CategoryReport, error) {
	var reports []models.CategoryReport
	if err := r.db.SelectContext(ctx, &reports, `SELECT `+categoryColumns+` FROM category_reports WHERE generic_report_id = $1 ORDER BY id`, genericID); err != nil {
		return nil, fmt.Errorf("list category reports: %w", err)
	}
	return reports, nil
}

// ListByPeriodKind returns every report of kind within the period in primary key order.
func (r *CategoryReportRepository) ListByPeriodKind(ctx context.Context, periodID int64, kind models.CategoryKind) ([]models.CategoryReport, error) {
	const query = `SELECT c.id, c.generic_report_id, c.kind, c.payload, c.result, c.adjusted_result, c.created_at, c.updated_at
FROM category_reports c
JOIN generic_reports g ON g.id = c.generic_report_id
WHERE g.period_id = $1 AND c.kind = $2
ORDER BY c.id`
	var reports []models.CategoryReport
	if err := r.db.SelectContext(ctx, &reports, query, periodID, kind); err != nil {
		return nil, fmt.Errorf("list %s reports: %w", kind, err)
	}
	return reports, nil
}

// Upsert stores the report keyed by (generic report, kind) and refreshes its ID and timestamps.
func (r *CategoryReportRepository) Upsert(ctx context.Context, report *models.CategoryReport) error {
	now := time.Now().UTC()
	payload := report.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	const query = `INSERT INTO category_reports (generic_report_id, kind, payload, result, adjusted_result, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (generic_report_id, kind)
DO UPDATE SET payload = EXCLUDED.payload, result = EXCLUDED.result, adjusted_result = EXCLUDED.adjusted_result, updated_at = EXCLUDED.updated_at
RETURNING ` + categoryColumns
	var stored models.CategoryReport
	if err := r.db.GetContext(ctx, &stored, query, report.GenericReportID, report.Kind, payload, report.Result, report.AdjustedResult, now); err != nil {
		return fmt.Errorf("upsert %s report: %w", report.Kind, err)
	}
	*report = stored
	return nil
}

// UpdateScores stores recomputed raw and adjusted results.
func (r *CategoryReportRepository) UpdateScores(ctx context.Context, id int64, result, adjusted float64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE category_reports SET result = $1, adjusted_result = $2, updated_at = $3 WHERE id = $4`, result, adjusted, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update category scores: %w", err)
	}
	return nil
}
