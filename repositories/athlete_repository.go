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
	ErrAthleteNotFound        = errors.New("athlete not found")
	ErrAthleteCategoryInvalid = errors.New("athlete category conflict or invalid")
)

type AthleteRepository interface {
	Create(ctx context.Context, athlete *models.Athlete) error
	GetByID(ctx context.Context, id int) (*models.Athlete, error)
	ListByCategory(ctx context.Context, categoryID int) ([]*models.Athlete, error)
	Update(ctx context.Context, athlete *models.Athlete) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresAthleteRepository struct {
	db *sql.DB
}

func NewPostgresAthleteRepository(db *sql.DB) AthleteRepository {
	return &postgresAthleteRepository{db: db}
}

func (r *postgresAthleteRepository) Create(ctx context.Context, athlete *models.Athlete) error {
	query := `
		INSERT INTO athletes (category_id, name, team, display_order, photo_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		athlete.CategoryID,
		athlete.Name,
		athlete.Team,
		athlete.DisplayOrder,
		athlete.PhotoKey,
	).Scan(&athlete.ID, &athlete.CreatedAt)

	return r.handleAthleteError(err)
}

func (r *postgresAthleteRepository) GetByID(ctx context.Context, id int) (*models.Athlete, error) {
	query := `
		SELECT id, category_id, name, team, display_order, photo_key, created_at
		FROM athletes
		WHERE id = $1`

	athlete, err := r.scanAthlete(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to scan athlete by id %d: %w", id, err)
	}
	return athlete, nil
}

func (r *postgresAthleteRepository) ListByCategory(ctx context.Context, categoryID int) ([]*models.Athlete, error) {
	query := `
		SELECT id, category_id, name, team, display_order, photo_key, created_at
		FROM athletes
		WHERE category_id = $1
		ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query athletes for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	athletes := make([]*models.Athlete, 0)
	for rows.Next() {
		athlete, scanErr := r.scanAthlete(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan athlete row: %w", scanErr)
		}
		athletes = append(athletes, athlete)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during athlete rows iteration: %w", err)
	}
	return athletes, nil
}

func (r *postgresAthleteRepository) Update(ctx context.Context, athlete *models.Athlete) error {
	query := `
		UPDATE athletes
		SET name = $1, team = $2, display_order = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		athlete.Name,
		athlete.Team,
		athlete.DisplayOrder,
		athlete.ID,
	)
	if err != nil {
		return r.handleAthleteError(err)
	}
	return checkAffectedRows(result, ErrAthleteNotFound)
}

func (r *postgresAthleteRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE athletes SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update photo key for athlete %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrAthleteNotFound)
}

func (r *postgresAthleteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM athletes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAthleteNotFound)
}

func (r *postgresAthleteRepository) scanAthlete(scanner interface{ Scan(...interface{}) error }) (*models.Athlete, error) {
	var a models.Athlete
	err := scanner.Scan(
		&a.ID,
		&a.CategoryID,
		&a.Name,
		&a.Team,
		&a.DisplayOrder,
		&a.PhotoKey,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresAthleteRepository) handleAthleteError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Constraint == "athletes_category_id_fkey" {
			return ErrAthleteCategoryInvalid
		}
	}
	return err
}
