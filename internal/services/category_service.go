package services

import (
	"context"
	"strings"

	"taskmaster/internal/domain"
	"taskmaster/internal/repository/sqlite"
	"taskmaster/internal/validation"
)

// categoryServiceImpl implements the CategoryService interface
type categoryServiceImpl struct {
	repo              sqlite.Repository
	mapper            *domain.Mapper
	categoryValidator *validation.CategoryValidator
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(repo sqlite.Repository) CategoryService {
	return &categoryServiceImpl{
		repo:              repo,
		mapper:            domain.NewMapper(),
		categoryValidator: validation.NewCategoryValidator(),
	}
}

// ListCategories returns every category in creation order
func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Category.FromDatabaseSlice(rows), nil
}

// CreateCategory validates and stores a category, defaulting an empty color
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Color == "" {
		category.Color = domain.DefaultCategoryColor
	}
	if err := s.categoryValidator.ValidateCategory(category); err != nil {
		return nil, validation.AsAppError(err)
	}

	row := s.mapper.Category.ToDatabase(category)
	if err := s.repo.CreateCategory(ctx, &row); err != nil {
		return nil, err
	}
	created := s.mapper.Category.FromDatabase(row)
	return &created, nil
}

// DeleteCategory removes a category; todos keep existing without it
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}
