package services

import (
	"errors"
	"fmt"

	"butik/internal/models"
	"butik/internal/repositories"
)

// CategoryInput is the payload of a category create request.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,max=500"`
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// CreateCategory creates a category whose slug is derived from its name.
// Names that collapse to an existing slug are rejected with ErrConflict.
func (s *CategoryService) CreateCategory(in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	slug := CategorySlug(in.Name)

	if _, err := s.repo.GetBySlug(slug); err == nil {
		return nil, fmt.Errorf("%w: category slug %q already exists", ErrConflict, slug)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category slug %q already exists", ErrConflict, slug)
		}
		return nil, err
	}
	return category, nil
}
