package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
	"github.com/winsonteo/GripRank-next-sub000/utils"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Judge, error)
	Login(ctx context.Context, input LoginInput) (*models.Judge, error)
}

type authService struct {
	judgeRepo repositories.JudgeRepository
}

func NewAuthService(judgeRepo repositories.JudgeRepository) AuthService {
	return &authService{judgeRepo: judgeRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Judge, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := models.JudgeRole(input.Role)
	if role == "" {
		role = models.RoleJudge
	}
	if role != models.RoleJudge && role != models.RoleChief {
		return nil, fmt.Errorf("%w: unknown judge role %q", ErrValidationFailed, input.Role)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	judge := &models.Judge{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.judgeRepo.Create(ctx, judge); err != nil {
		if errors.Is(err, repositories.ErrJudgeEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, fmt.Errorf("failed to create judge: %w", err)
	}

	judge.PasswordHash = ""
	return judge, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Judge, error) {
	judge, err := s.judgeRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrJudgeNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find judge by email: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, judge.PasswordHash) {
		return nil, ErrAuthInvalidCredentials
	}

	judge.PasswordHash = ""
	return judge, nil
}
