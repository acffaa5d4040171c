package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/winsonteo/GripRank-next-sub000/models"
)

var (
	ErrQualifierResultNotFound  = errors.New("qualifier result not found")
	ErrQualifierAthleteInvalid  = errors.New("qualifier result athlete conflict or invalid")
	ErrQualifierCategoryInvalid = errors.New("qualifier result category conflict or invalid")
)

// QualifierRepository owns the two qualifying runs per athlete. Results
// are written by the judging screens; the engine only reads them.
type QualifierRepository interface {
	Upsert(ctx context.Context, result *models.QualifierResult) error
	GetByAthlete(ctx context.Context, athleteID int) (*models.QualifierResult, error)
	MapByCategory(ctx context.Context, categoryID int) (map[int]models.QualifierResult, error)
}

type postgresQualifierRepository struct {
	db *sql.DB
}

func NewPostgresQualifierRepository(db *sql.DB) QualifierRepository {
	return &postgresQualifierRepository{db: db}
}

func (r *postgresQualifierRepository) Upsert(ctx context.Context, result *models.QualifierResult) error {
	query := `
		INSERT INTO qualifier_results
			(athlete_id, category_id, run_a_status, run_a_ms, run_b_status, run_b_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (athlete_id) DO UPDATE SET
			run_a_status = EXCLUDED.run_a_status,
			run_a_ms = EXCLUDED.run_a_ms,
			run_b_status = EXCLUDED.run_b_status,
			run_b_ms = EXCLUDED.run_b_ms`

	aStatus, aMs := runParams(result.RunA)
	bStatus, bMs := runParams(result.RunB)

	_, err := r.db.ExecContext(ctx, query,
		result.AthleteID,
		result.CategoryID,
		aStatus, aMs,
		bStatus, bMs,
	)
	return r.handleQualifierError(err)
}

func (r *postgresQualifierRepository) GetByAthlete(ctx context.Context, athleteID int) (*models.QualifierResult, error) {
	query := `
		SELECT athlete_id, category_id, run_a_status, run_a_ms, run_b_status, run_b_ms
		FROM qualifier_results
		WHERE athlete_id = $1`

	result, err := r.scanResult(r.db.QueryRowContext(ctx, query, athleteID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQualifierResultNotFound
		}
		return nil, fmt.Errorf("failed to scan qualifier result for athlete %d: %w", athleteID, err)
	}
	return result, nil
}

func (r *postgresQualifierRepository) MapByCategory(ctx context.Context, categoryID int) (map[int]models.QualifierResult, error) {
	query := `
		SELECT athlete_id, category_id, run_a_status, run_a_ms, run_b_status, run_b_ms
		FROM qualifier_results
		WHERE category_id = $1`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifier results for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	results := make(map[int]models.QualifierResult)
	for rows.Next() {
		result, scanErr := r.scanResult(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan qualifier result row: %w", scanErr)
		}
		results[result.AthleteID] = *result
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during qualifier result rows iteration: %w", err)
	}
	return results, nil
}

func (r *postgresQualifierRepository) scanResult(scanner interface{ Scan(...interface{}) error }) (*models.QualifierResult, error) {
	var (
		result           models.QualifierResult
		aStatus, bStatus sql.NullString
		aMs, bMs         sql.NullInt64
	)
	err := scanner.Scan(
		&result.AthleteID,
		&result.CategoryID,
		&aStatus, &aMs,
		&bStatus, &bMs,
	)
	if err != nil {
		return nil, err
	}
	result.RunA = scanRun(aStatus, aMs)
	result.RunB = scanRun(bStatus, bMs)
	return &result, nil
}

func (r *postgresQualifierRepository) handleQualifierError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "qualifier_results_athlete_id_fkey":
			return ErrQualifierAthleteInvalid
		case "qualifier_results_category_id_fkey":
			return ErrQualifierCategoryInvalid
		}
	}
	return err
}
