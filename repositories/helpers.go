package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository
// methods can take part in a caller-owned transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// runParams splits a RunResult into its nullable column values. A zero
// RunResult (no run recorded) is stored as NULL/NULL.
func runParams(r models.RunResult) (status interface{}, ms interface{}) {
	if r.Status == "" {
		return nil, nil
	}
	if r.Ms != nil {
		return string(r.Status), *r.Ms
	}
	return string(r.Status), nil
}

// lanePtrParams is runParams for optional match lanes.
func lanePtrParams(r *models.RunResult) (status interface{}, ms interface{}) {
	if r == nil {
		return nil, nil
	}
	return runParams(*r)
}

func scanRun(status sql.NullString, ms sql.NullInt64) models.RunResult {
	var r models.RunResult
	if status.Valid {
		r.Status = models.RunStatus(status.String)
	}
	if ms.Valid {
		v := int(ms.Int64)
		r.Ms = &v
	}
	return r
}

func scanLane(status sql.NullString, ms sql.NullInt64) *models.RunResult {
	if !status.Valid {
		return nil
	}
	r := scanRun(status, ms)
	return &r
}
