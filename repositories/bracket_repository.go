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
	ErrMatchNotFound        = errors.New("bracket match not found")
	ErrFinalsMetaNotFound   = errors.New("finals meta not found")
	ErrMatchAthleteInvalid  = errors.New("bracket match athlete conflict or invalid")
	ErrMatchCategoryInvalid = errors.New("bracket match category conflict or invalid")
)

// BracketRepository stores the generated bracket: one FinalsMeta row per
// category plus the per-round match documents. Regeneration is destructive
// and total, so creation methods take an SQLExecutor and run inside the
// caller's transaction.
type BracketRepository interface {
	GetMeta(ctx context.Context, categoryID int) (*models.FinalsMeta, error)
	CreateMeta(ctx context.Context, exec SQLExecutor, meta *models.FinalsMeta) error

	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListByCategory(ctx context.Context, categoryID int) ([]models.Match, error)
	ListByRound(ctx context.Context, categoryID int, round models.RoundID) ([]models.Match, error)
	CreateMatch(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateMatchResult(ctx context.Context, id int, laneA, laneB *models.RunResult, winner *models.Side, allowWinnerRun bool) error

	DeleteMatchesByRound(ctx context.Context, exec SQLExecutor, categoryID int, round models.RoundID) error
	DeleteAllByCategory(ctx context.Context, exec SQLExecutor, categoryID int) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) GetMeta(ctx context.Context, categoryID int) (*models.FinalsMeta, error) {
	query := `
		SELECT category_id, size, seed_ids, rule, created_at
		FROM finals_meta
		WHERE category_id = $1`

	meta := &models.FinalsMeta{}
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(
		&meta.CategoryID,
		&meta.Size,
		pq.Array(&meta.SeedIDs),
		&meta.Rule,
		&meta.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFinalsMetaNotFound
		}
		return nil, fmt.Errorf("failed to scan finals meta for category %d: %w", categoryID, err)
	}
	return meta, nil
}

func (r *postgresBracketRepository) CreateMeta(ctx context.Context, exec SQLExecutor, meta *models.FinalsMeta) error {
	query := `
		INSERT INTO finals_meta (category_id, size, seed_ids, rule)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := exec.QueryRowContext(ctx, query,
		meta.CategoryID,
		meta.Size,
		pq.Array(meta.SeedIDs),
		meta.Rule,
	).Scan(&meta.CreatedAt)

	return r.handleMatchError(err)
}

const matchColumns = `
	id, category_id, round, slot, athlete_a_id, athlete_b_id,
	lane_a_status, lane_a_ms, lane_b_status, lane_b_ms,
	winner, allow_winner_run, created_at`

func (r *postgresBracketRepository) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := r.scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresBracketRepository) ListByCategory(ctx context.Context, categoryID int) ([]models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE category_id = $1 ORDER BY id ASC`
	return r.queryMatches(ctx, query, categoryID)
}

func (r *postgresBracketRepository) ListByRound(ctx context.Context, categoryID int, round models.RoundID) ([]models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE category_id = $1 AND round = $2 ORDER BY slot ASC`
	return r.queryMatches(ctx, query, categoryID, string(round))
}

func (r *postgresBracketRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresBracketRepository) CreateMatch(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(category_id, round, slot, athlete_a_id, athlete_b_id,
			 lane_a_status, lane_a_ms, lane_b_status, lane_b_ms,
			 winner, allow_winner_run)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	aStatus, aMs := lanePtrParams(match.LaneA)
	bStatus, bMs := lanePtrParams(match.LaneB)

	var winner interface{}
	if match.Winner != nil {
		winner = string(*match.Winner)
	}

	err := exec.QueryRowContext(ctx, query,
		match.CategoryID,
		string(match.Round),
		match.Slot,
		match.AthleteAID,
		match.AthleteBID,
		aStatus, aMs,
		bStatus, bMs,
		winner,
		match.AllowWinnerRun,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresBracketRepository) UpdateMatchResult(ctx context.Context, id int, laneA, laneB *models.RunResult, winner *models.Side, allowWinnerRun bool) error {
	query := `
		UPDATE matches
		SET lane_a_status = $1, lane_a_ms = $2,
		    lane_b_status = $3, lane_b_ms = $4,
		    winner = $5, allow_winner_run = $6
		WHERE id = $7`

	aStatus, aMs := lanePtrParams(laneA)
	bStatus, bMs := lanePtrParams(laneB)

	var winnerValue interface{}
	if winner != nil {
		winnerValue = string(*winner)
	}

	result, err := r.db.ExecContext(ctx, query, aStatus, aMs, bStatus, bMs, winnerValue, allowWinnerRun, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresBracketRepository) DeleteMatchesByRound(ctx context.Context, exec SQLExecutor, categoryID int, round models.RoundID) error {
	_, err := exec.ExecContext(ctx,
		`DELETE FROM matches WHERE category_id = $1 AND round = $2`,
		categoryID, string(round),
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s matches for category %d: %w", round, categoryID, err)
	}
	return nil
}

// DeleteAllByCategory wipes the whole bracket: every match and the meta
// row. Deletion must complete before the new bracket is written.
func (r *postgresBracketRepository) DeleteAllByCategory(ctx context.Context, exec SQLExecutor, categoryID int) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE category_id = $1`, categoryID); err != nil {
		return fmt.Errorf("failed to delete matches for category %d: %w", categoryID, err)
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM finals_meta WHERE category_id = $1`, categoryID); err != nil {
		return fmt.Errorf("failed to delete finals meta for category %d: %w", categoryID, err)
	}
	return nil
}

func (r *postgresBracketRepository) scanMatch(scanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var (
		match            models.Match
		aStatus, bStatus sql.NullString
		aMs, bMs         sql.NullInt64
		winner           sql.NullString
	)
	err := scanner.Scan(
		&match.ID,
		&match.CategoryID,
		&match.Round,
		&match.Slot,
		&match.AthleteAID,
		&match.AthleteBID,
		&aStatus, &aMs,
		&bStatus, &bMs,
		&winner,
		&match.AllowWinnerRun,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	match.LaneA = scanLane(aStatus, aMs)
	match.LaneB = scanLane(bStatus, bMs)
	if winner.Valid {
		side := models.Side(winner.String)
		match.Winner = &side
	}
	return &match, nil
}

func (r *postgresBracketRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_category_id_fkey", "finals_meta_category_id_fkey":
			return ErrMatchCategoryInvalid
		case "matches_athlete_a_id_fkey", "matches_athlete_b_id_fkey":
			return ErrMatchAthleteInvalid
		}
	}
	return err
}
