package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/academic-rating/internal/models"
)

// setPlaces writes computed places into table in one transaction.
func setPlaces(ctx context.Context, db *sqlx.DB, table string, assignments []models.PlaceAssignment) (err error) {
	if len(assignments) == 0 {
		return nil
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s places tx: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = writePlaces(ctx, tx, table, assignments); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s places tx: %w", table, err)
	}
	return nil
}

// replacePlaces deletes the period's rows of table whose teacher result is not in keep
// and writes places for the remaining rows, in one transaction.
func replacePlaces(ctx context.Context, db *sqlx.DB, table string, periodID int64, keep []int64, assignments []models.PlaceAssignment) (removed int64, err error) {
	if keep == nil {
		keep = []int64{}
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin %s places tx: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := fmt.Sprintf(`DELETE FROM %s x
USING teacher_results tr, generic_reports g
WHERE tr.id = x.teacher_result_id AND g.id = tr.generic_report_id
AND g.period_id = $1 AND NOT (x.teacher_result_id = ANY($2))`, table)
	res, err := tx.ExecContext(ctx, query, periodID, pq.Array(keep))
	if err != nil {
		return 0, fmt.Errorf("delete stale %s: %w", table, err)
	}
	if removed, err = res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("delete stale %s: %w", table, err)
	}

	if err = writePlaces(ctx, tx, table, assignments); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s places tx: %w", table, err)
	}
	return removed, nil
}

func writePlaces(ctx context.Context, tx *sqlx.Tx, table string, assignments []models.PlaceAssignment) error {
	query := fmt.Sprintf(`UPDATE %s SET place = $1 WHERE id = $2`, table)
	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, query, a.Place, a.ID); err != nil {
			return fmt.Errorf("set %s place: %w", table, err)
		}
	}
	return nil
}
