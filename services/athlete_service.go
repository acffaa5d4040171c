package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
	"github.com/winsonteo/GripRank-next-sub000/storage"
)

var ErrUnsupportedPhotoType = errors.New("photo must be a jpeg, png or webp image")

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type AthleteInput struct {
	CategoryID   int    `json:"category_id"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	DisplayOrder int    `json:"display_order"`
}

type AthleteService interface {
	Create(ctx context.Context, input AthleteInput) (*models.Athlete, error)
	GetByID(ctx context.Context, id int) (*models.Athlete, error)
	ListByCategory(ctx context.Context, categoryID int) ([]*models.Athlete, error)
	Update(ctx context.Context, id int, input AthleteInput) (*models.Athlete, error)
	Delete(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Athlete, error)
}

type athleteService struct {
	athleteRepo  repositories.AthleteRepository
	categoryRepo repositories.CategoryRepository
	uploader     storage.FileUploader
	logger       *slog.Logger
}

func NewAthleteService(
	athleteRepo repositories.AthleteRepository,
	categoryRepo repositories.CategoryRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) AthleteService {
	return &athleteService{
		athleteRepo:  athleteRepo,
		categoryRepo: categoryRepo,
		uploader:     uploader,
		logger:       logger,
	}
}

func (s *athleteService) Create(ctx context.Context, input AthleteInput) (*models.Athlete, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: athlete name is required", ErrValidationFailed)
	}
	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", input.CategoryID, err)
	}

	athlete := &models.Athlete{
		CategoryID:   input.CategoryID,
		Name:         input.Name,
		Team:         input.Team,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.athleteRepo.Create(ctx, athlete); err != nil {
		return nil, fmt.Errorf("failed to create athlete: %w", err)
	}
	return athlete, nil
}

func (s *athleteService) GetByID(ctx context.Context, id int) (*models.Athlete, error) {
	athlete, err := s.athleteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to load athlete %d: %w", id, err)
	}
	s.populatePhotoURL(athlete)
	return athlete, nil
}

func (s *athleteService) ListByCategory(ctx context.Context, categoryID int) ([]*models.Athlete, error) {
	athletes, err := s.athleteRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes for category %d: %w", categoryID, err)
	}
	for _, athlete := range athletes {
		s.populatePhotoURL(athlete)
	}
	return athletes, nil
}

func (s *athleteService) Update(ctx context.Context, id int, input AthleteInput) (*models.Athlete, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: athlete name is required", ErrValidationFailed)
	}
	athlete, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	athlete.Name = input.Name
	athlete.Team = input.Team
	athlete.DisplayOrder = input.DisplayOrder
	if err := s.athleteRepo.Update(ctx, athlete); err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to update athlete %d: %w", id, err)
	}
	return athlete, nil
}

func (s *athleteService) Delete(ctx context.Context, id int) error {
	athlete, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.athleteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAthleteNotFound) {
			return ErrAthleteNotFound
		}
		return fmt.Errorf("failed to delete athlete %d: %w", id, err)
	}
	if athlete.PhotoKey != nil {
		if err := s.uploader.Delete(ctx, *athlete.PhotoKey); err != nil {
			s.logger.Warn("failed to delete athlete photo",
				slog.Int("athlete_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *athleteService) UploadPhoto(ctx context.Context, id int, contentType string, photo io.Reader) (*models.Athlete, error) {
	ext, ok := photoExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedPhotoType
	}

	athlete, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("athletes/%d/photo_%d%s", id, time.Now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, photo)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo for athlete %d: %w", id, err)
	}

	oldKey := athlete.PhotoKey
	if err := s.athleteRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store photo key for athlete %d: %w", id, err)
	}
	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous athlete photo",
				slog.Int("athlete_id", id), slog.Any("error", err))
		}
	}

	athlete.PhotoKey = &result.Key
	s.populatePhotoURL(athlete)
	return athlete, nil
}

func (s *athleteService) populatePhotoURL(athlete *models.Athlete) {
	if athlete == nil || athlete.PhotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*athlete.PhotoKey)
	if url != "" {
		athlete.PhotoURL = &url
	}
}
