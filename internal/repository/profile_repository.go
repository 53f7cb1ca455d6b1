package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academic-rating/internal/models"
)

const profileSelect = `SELECT p.id, p.full_name, p.department_id, p.position_id, d.faculty_id, COALESCE(pos.cumulative_calculation, '') AS cumulative_calculation
FROM profiles p
LEFT JOIN departments d ON d.id = p.department_id
LEFT JOIN positions pos ON pos.id = p.position_id`

// ProfileRepository reads staff profiles with their department, faculty and position mode.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID loads a profile.
func (r *ProfileRepository) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, profileSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListWithDepartment returns every profile attached to a department in primary key order.
func (r *ProfileRepository) ListWithDepartment(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.SelectContext(ctx, &profiles, profileSelect+` WHERE p.department_id IS NOT NULL ORDER BY p.id`); err != nil {
		return nil, fmt.Errorf("list profiles with department: %w", err)
	}
	return profiles, nil
}

// ListCumulative returns profiles whose position blends results with a peer group.
func (r *ProfileRepository) ListCumulative(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.SelectContext(ctx, &profiles, profileSelect+` WHERE pos.cumulative_calculation <> '' ORDER BY p.id`); err != nil {
		return nil, fmt.Errorf("list cumulative profiles: %w", err)
	}
	return profiles, nil
}

// FindHead returns the first profile in scope whose position uses mode. Department heads are
// scoped by department ID, faculty heads by faculty ID.
func (r *ProfileRepository) FindHead(ctx context.Context, mode models.CumulativeMode, scopeID int64) (*models.Profile, error) {
	var query string
	switch mode {
	case models.CumulativeByDepartment:
		query = profileSelect + ` WHERE pos.cumulative_calculation = $1 AND p.department_id = $2 ORDER BY p.id LIMIT 1`
	case models.CumulativeByFaculty:
		query = profileSelect + ` WHERE pos.cumulative_calculation = $1 AND d.faculty_id = $2 ORDER BY p.id LIMIT 1`
	default:
		return nil, fmt.Errorf("find head: unsupported mode %q", mode)
	}
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, mode, scopeID); err != nil {
		return nil, err
	}
	return &profile, nil
}
