package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

const genericColumns = `id, profile_id, period_id, assignment_duration, assignment_share, students_rating, is_closed, individual_result, result, created_at, updated_at`

// GenericReportRepository persists per person, per period report data.
type GenericReportRepository struct {
	db *sqlx.DB
}

// NewGenericReportRepository constructs the repository.
func NewGenericReportRepository(db *sqlx.DB) *GenericReportRepository {
	return &GenericReportRepository{db: db}
}

// FindByID loads a generic report.
func (r *GenericReportRepository) FindByID(ctx context.Context, id int64) (*models.GenericReport, error) {
	var report models.GenericReport
	if err := r.db.GetContext(ctx, &report, `SELECT `+genericColumns+` FROM generic_reports WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &report, nil
}

// FindByProfilePeriod loads the report of a profile for a period.
func (r *GenericReportRepository) FindByProfilePeriod(ctx context.Context, profileID, periodID int64) (*models.GenericReport, error) {
	var report models.GenericReport
	if err := r.db.GetContext(ctx, &report, `SELECT `+genericColumns+` FROM generic_reports WHERE profile_id = $1 AND period_id = $2`, profileID, periodID); err != nil {
		return nil, err
	}
	return &report, nil
}

// Upsert creates or updates the submitted fields keyed by (profile, period). Stored
// result and closed flag are returned into report.
func (r *GenericReportRepository) Upsert(ctx context.Context, report *models.GenericReport) error {
	now := time.Now().UTC()
	const query = `INSERT INTO generic_reports (profile_id, period_id, assignment_duration, assignment_share, students_rating, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (profile_id, period_id)
DO UPDATE SET assignment_duration = EXCLUDED.assignment_duration, assignment_share = EXCLUDED.assignment_share, students_rating = EXCLUDED.students_rating, updated_at = EXCLUDED.updated_at
RETURNING ` + genericColumns
	var stored models.GenericReport
	if err := r.db.GetContext(ctx, &stored, query, report.ProfileID, report.PeriodID, report.AssignmentDuration, report.AssignmentShare, report.StudentsRating, now); err != nil {
		return fmt.Errorf("upsert generic report: %w", err)
	}
	*report = stored
	return nil
}

// UpdateResult stores the person's own sum and the final, possibly blended, result.
func (r *GenericReportRepository) UpdateResult(ctx context.Context, id int64, individual, result float64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE generic_reports SET individual_result = $1, result = $2, updated_at = $3 WHERE id = $4`, individual, result, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update generic result: %w", err)
	}
	return nil
}

// Close freezes the report against further edits.
func (r *GenericReportRepository) Close(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE generic_reports SET is_closed = TRUE, updated_at = $1 WHERE id = $2`, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("close generic report: %w", err)
	}
	return nil
}

// SumPeerResults sums the individual results of the period's reports inside a department
// or faculty, leaving out excludeID. Blended results are never read back into a blend.
func (r *GenericReportRepository) SumPeerResults(ctx context.Context, periodID int64, mode models.CumulativeMode, scopeID, excludeID int64) (float64, int, error) {
	var scope string
	switch mode {
	case models.CumulativeByDepartment:
		scope = "p.department_id = $2"
	case models.CumulativeByFaculty:
		scope = "d.faculty_id = $2"
	default:
		return 0, 0, fmt.Errorf("sum peer results: unsupported mode %q", mode)
	}
	query := `SELECT COALESCE(SUM(g.individual_result), 0) AS total, COUNT(g.id) AS peers
FROM generic_reports g
JOIN profiles p ON p.id = g.profile_id
LEFT JOIN departments d ON d.id = p.department_id
WHERE g.period_id = $1 AND ` + scope + ` AND g.id <> $3`
	var row struct {
		Total float64 `db:"total"`
		Peers int     `db:"peers"`
	}
	if err := r.db.GetContext(ctx, &row, query, periodID, scopeID, excludeID); err != nil {
		return 0, 0, fmt.Errorf("sum peer results: %w", err)
	}
	return row.Total, row.Peers, nil
}
