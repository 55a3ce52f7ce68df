package services

import (
	"errors"

	"gorm.io/gorm"

	"finance-manager/models"
)

// CategoryService is a strictly owner-scoped label taxonomy. No sharing
// model applies: only the owner sees or touches a category.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryInput struct {
	Name        string
	Color       string
	Description string
}

type UpdateCategoryInput struct {
	Name        *string
	Color       *string
	Description *string
}

func (s *CategoryService) ListByOwner(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("owner_id = ?", userID).Find(&categories).Error
	return categories, err
}

func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(in CreateCategoryInput, ownerID uint) (*models.Category, error) {
	category := models.Category{
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(id uint, in UpdateCategoryInput, userID uint) error {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if category.OwnerID != userID {
		return ErrAccessDenied
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	return s.db.Save(&category).Error
}

func (s *CategoryService) Delete(id, userID uint) error {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if category.OwnerID != userID {
		return ErrAccessDenied
	}
	return s.db.Delete(&category).Error
}
