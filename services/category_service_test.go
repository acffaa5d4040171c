package services

import (
	"context"
	"errors"
	"testing"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

func TestCategoryServiceCreateDefaults(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{categories: map[int]models.Category{}})

	category, err := svc.Create(context.Background(), CategoryInput{Name: "Women Speed"})
	if err != nil {
		t.Fatal(err)
	}
	if category.FalseStartRule != models.RuleIFSC {
		t.Errorf("default rule = %s, want IFSC", category.FalseStartRule)
	}
	if category.Precision != 2 {
		t.Errorf("default precision = %d, want 2", category.Precision)
	}
}

func TestCategoryServiceCreateValidation(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryRepo{categories: map[int]models.Category{}})

	tests := []struct {
		name  string
		input CategoryInput
		want  error
	}{
		{"missing name", CategoryInput{}, ErrValidationFailed},
		{"unknown rule", CategoryInput{Name: "X", FalseStartRule: "STRICT"}, ErrInvalidFalseStartRule},
		{"bad precision", CategoryInput{Name: "X", Precision: 4}, ErrInvalidPrecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCategoryServiceUpdate(t *testing.T) {
	repo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	svc := NewCategoryService(repo)

	category, err := svc.Update(context.Background(), 1, CategoryInput{
		Name:           "Men Speed Final",
		FalseStartRule: "TOLERANT",
		Precision:      3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if category.FalseStartRule != models.RuleTolerant || category.Precision != 3 {
		t.Errorf("updated category = %+v", category)
	}

	if _, err := svc.Update(context.Background(), 42, CategoryInput{Name: "X"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryServiceDelete(t *testing.T) {
	repo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	svc := NewCategoryService(repo)

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
}
