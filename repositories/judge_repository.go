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
	ErrJudgeNotFound      = errors.New("judge not found")
	ErrJudgeEmailConflict = errors.New("judge email is already in use")
)

type JudgeRepository interface {
	Create(ctx context.Context, judge *models.Judge) error
	GetByID(ctx context.Context, id int) (*models.Judge, error)
	GetByEmail(ctx context.Context, email string) (*models.Judge, error)
}

type postgresJudgeRepository struct {
	db *sql.DB
}

func NewPostgresJudgeRepository(db *sql.DB) JudgeRepository {
	return &postgresJudgeRepository{db: db}
}

func (r *postgresJudgeRepository) Create(ctx context.Context, judge *models.Judge) error {
	query := `
		INSERT INTO judges (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		judge.Name,
		judge.Email,
		judge.PasswordHash,
		string(judge.Role),
	).Scan(&judge.ID, &judge.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "judges_email_key" {
			return ErrJudgeEmailConflict
		}
		return fmt.Errorf("failed to create judge: %w", err)
	}
	return nil
}

func (r *postgresJudgeRepository) GetByID(ctx context.Context, id int) (*models.Judge, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM judges
		WHERE id = $1`
	return r.scanJudge(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresJudgeRepository) GetByEmail(ctx context.Context, email string) (*models.Judge, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM judges
		WHERE email = $1`
	return r.scanJudge(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresJudgeRepository) scanJudge(row *sql.Row) (*models.Judge, error) {
	judge := &models.Judge{}
	err := row.Scan(
		&judge.ID,
		&judge.Name,
		&judge.Email,
		&judge.PasswordHash,
		&judge.Role,
		&judge.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJudgeNotFound
		}
		return nil, fmt.Errorf("failed to scan judge: %w", err)
	}
	return judge, nil
}
