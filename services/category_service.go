package services

import (
	"errors"

	"medtrain/apierror"
	"medtrain/models"

	"gorm.io/gorm"
)

// CategoryService handles category CRUD. The update field allowlist is
// enforced by the validator layer; this service only ever sees allowed
// fields.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// UpdateCategoryInput carries a partial category update restricted to the
// allowed fields name, description and icon.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
}

// CreateCategory inserts a category; names are unique.
func (s *CategoryService) CreateCategory(name, description, icon string) (*models.Category, error) {
	var existing models.Category
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, apierror.Conflict("A category with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if icon == "" {
		icon = "default-icon.svg"
	}
	category := models.Category{
		Name:        name,
		Description: description,
		Icon:        icon,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apierror.BadRequest("Failed to create category")
	}
	return &category, nil
}

// GetCategories lists all categories.
func (s *CategoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID returns one category or 404.
func (s *CategoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return nil, apierror.NotFound("Category not found")
	}
	return &category, nil
}

// UpdateCategory applies a partial update of the allowed fields.
func (s *CategoryService) UpdateCategory(categoryID uint, input UpdateCategoryInput) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return nil, apierror.NotFound("Category not found")
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, apierror.BadRequest("Failed to update category")
	}
	return &category, nil
}

// DeleteCategory hard-deletes a category. Tasks referencing it are not
// touched and keep the dangling reference.
func (s *CategoryService) DeleteCategory(categoryID uint) error {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		return apierror.NotFound("Category not found")
	}
	return s.db.Unscoped().Delete(&category).Error
}
