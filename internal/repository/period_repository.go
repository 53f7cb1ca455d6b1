package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

const periodColumns = `id, title, is_active, annual_workload, created_at, updated_at`

// PeriodRepository handles persistence for report periods.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository instantiates a period repository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// FindByID loads a period by identifier.
func (r *PeriodRepository) FindByID(ctx context.Context, id int64) (*models.ReportPeriod, error) {
	var period models.ReportPeriod
	if err := r.db.GetContext(ctx, &period, `SELECT `+periodColumns+` FROM report_periods WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// FindByTitle loads a period by its "YYYY/YYYY" title.
func (r *PeriodRepository) FindByTitle(ctx context.Context, title string) (*models.ReportPeriod, error) {
	var period models.ReportPeriod
	if err := r.db.GetContext(ctx, &period, `SELECT `+periodColumns+` FROM report_periods WHERE title = $1`, title); err != nil {
		return nil, err
	}
	return &period, nil
}

// ListActive returns every period flagged active. More than one row means the data is inconsistent.
func (r *PeriodRepository) ListActive(ctx context.Context) ([]models.ReportPeriod, error) {
	var periods []models.ReportPeriod
	if err := r.db.SelectContext(ctx, &periods, `SELECT `+periodColumns+` FROM report_periods WHERE is_active = TRUE ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list active periods: %w", err)
	}
	return periods, nil
}

// Create inserts a period, leaving it inactive.
func (r *PeriodRepository) Create(ctx context.Context, period *models.ReportPeriod) error {
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now
	const query = `INSERT INTO report_periods (title, is_active, annual_workload, created_at, updated_at) VALUES ($1, FALSE, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &period.ID, query, period.Title, period.AnnualWorkload, period.CreatedAt, period.UpdatedAt); err != nil {
		return fmt.Errorf("create period: %w", err)
	}
	period.IsActive = false
	return nil
}

// SetActive marks the provided period as active and deactivates the rest.
func (r *PeriodRepository) SetActive(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set active tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if _, err = tx.ExecContext(ctx, `UPDATE report_periods SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE AND id <> $2`, now, id); err != nil {
		return fmt.Errorf("deactivate other periods: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `UPDATE report_periods SET is_active = TRUE, updated_at = $2 WHERE id = $1`, id, now); err != nil {
		return fmt.Errorf("activate period: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit set active tx: %w", err)
	}
	return nil
}
