package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
	"github.com/winsonteo/GripRank-next-sub000/speed"
	"golang.org/x/sync/errgroup"
)

// QualifierResultInput carries both qualifying runs of one athlete.
type QualifierResultInput struct {
	RunA RunInput `json:"run_a"`
	RunB RunInput `json:"run_b"`
}

type StandingsService interface {
	BuildQualifierStandings(ctx context.Context, categoryID int) ([]models.QualifierStandingRow, error)
	SaveQualifierResult(ctx context.Context, athleteID int, input QualifierResultInput) (*models.QualifierResult, error)
}

type standingsService struct {
	categoryRepo  repositories.CategoryRepository
	athleteRepo   repositories.AthleteRepository
	qualifierRepo repositories.QualifierRepository
}

func NewStandingsService(
	categoryRepo repositories.CategoryRepository,
	athleteRepo repositories.AthleteRepository,
	qualifierRepo repositories.QualifierRepository,
) StandingsService {
	return &standingsService{
		categoryRepo:  categoryRepo,
		athleteRepo:   athleteRepo,
		qualifierRepo: qualifierRepo,
	}
}

func (s *standingsService) BuildQualifierStandings(ctx context.Context, categoryID int) ([]models.QualifierStandingRow, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	var (
		athletes []*models.Athlete
		results  map[int]models.QualifierResult
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		athletes, err = s.athleteRepo.ListByCategory(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list athletes for category %d: %w", categoryID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		results, err = s.qualifierRepo.MapByCategory(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to load qualifier results for category %d: %w", categoryID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return speed.BuildQualifierStandings(dereferenceAthletes(athletes), results, category.Precision), nil
}

func (s *standingsService) SaveQualifierResult(ctx context.Context, athleteID int, input QualifierResultInput) (*models.QualifierResult, error) {
	athlete, err := s.athleteRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to load athlete %d: %w", athleteID, err)
	}

	runA, err := input.RunA.ToRunResult()
	if err != nil {
		return nil, err
	}
	runB, err := input.RunB.ToRunResult()
	if err != nil {
		return nil, err
	}

	result := &models.QualifierResult{
		AthleteID:  athlete.ID,
		CategoryID: athlete.CategoryID,
		RunA:       runA,
		RunB:       runB,
	}
	if err := s.qualifierRepo.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save qualifier result for athlete %d: %w", athleteID, err)
	}
	return result, nil
}

func dereferenceAthletes(athletes []*models.Athlete) []models.Athlete {
	out := make([]models.Athlete, 0, len(athletes))
	for _, a := range athletes {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}
