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

type RankingService interface {
	// BuildOverallRanking merges bracket outcomes with qualifier times
	// into the final ranked list. Derived on demand, never persisted.
	BuildOverallRanking(ctx context.Context, categoryID int) ([]models.OverallRankingRow, error)
}

type rankingService struct {
	categoryRepo  repositories.CategoryRepository
	athleteRepo   repositories.AthleteRepository
	qualifierRepo repositories.QualifierRepository
	bracketRepo   repositories.BracketRepository
}

func NewRankingService(
	categoryRepo repositories.CategoryRepository,
	athleteRepo repositories.AthleteRepository,
	qualifierRepo repositories.QualifierRepository,
	bracketRepo repositories.BracketRepository,
) RankingService {
	return &rankingService{
		categoryRepo:  categoryRepo,
		athleteRepo:   athleteRepo,
		qualifierRepo: qualifierRepo,
		bracketRepo:   bracketRepo,
	}
}

func (s *rankingService) BuildOverallRanking(ctx context.Context, categoryID int) ([]models.OverallRankingRow, error) {
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
		matches  []models.Match
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
	g.Go(func() error {
		var err error
		matches, err = s.bracketRepo.ListByCategory(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list matches for category %d: %w", categoryID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return speed.BuildOverallRanking(dereferenceAthletes(athletes), matches, results, category.Precision), nil
}
