package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
)

type CategoryInput struct {
	Name           string `json:"name"`
	FalseStartRule string `json:"false_start_rule"`
	Precision      int    `json:"precision"`
}

type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, id int, input CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id int) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category, err := categoryFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNameConflict) {
			return nil, ErrCategoryNameConflict
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", id, err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id int, input CategoryInput) (*models.Category, error) {
	category, err := categoryFromInput(input)
	if err != nil {
		return nil, err
	}
	category.ID = id
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repositories.ErrCategoryNameConflict):
			return nil, ErrCategoryNameConflict
		}
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return s.GetByID(ctx, id)
}

func (s *categoryService) Delete(ctx context.Context, id int) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

func categoryFromInput(input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}
	rule := models.FalseStartRule(input.FalseStartRule)
	if rule == "" {
		rule = models.RuleIFSC
	}
	if rule != models.RuleIFSC && rule != models.RuleTolerant {
		return nil, ErrInvalidFalseStartRule
	}
	precision := input.Precision
	if precision == 0 {
		precision = 2
	}
	if precision != 2 && precision != 3 {
		return nil, ErrInvalidPrecision
	}
	return &models.Category{
		Name:           input.Name,
		FalseStartRule: rule,
		Precision:      precision,
	}, nil
}
