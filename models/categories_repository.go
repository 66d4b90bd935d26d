package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

// categoryExists reports notFound when no category with the given id exists.
func categoryExists(tx *gorm.DB, id uint, notFound error) error {
	var count int64
	if err := tx.Model(&Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

func (r *CategoriesRepository) GetActiveCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID returns a category whether or not it is active.
func (r *CategoriesRepository) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if category.ParentID != nil {
			if err := categoryExists(tx, *category.ParentID, ErrParentCategoryNotFound); err != nil {
				return err
			}
		}
		category.IsActive = true
		return translate(tx.Omit(clause.Associations).Create(category).Error, nil)
	})
}

// checkAncestry walks up from parentID and fails when it reaches id.
func checkAncestry(tx *gorm.DB, id, parentID uint) error {
	visited := map[uint]bool{}
	for current := &parentID; current != nil; {
		if *current == id {
			return ErrCategoryCycle
		}
		if visited[*current] {
			return nil
		}
		visited[*current] = true

		var ancestor Category
		if err := tx.Select("id", "parent_id").First(&ancestor, *current).Error; err != nil {
			return translate(err, ErrParentCategoryNotFound)
		}
		current = ancestor.ParentID
	}
	return nil
}

// UpdateCategory replaces the name, slug and parent of a category.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if category.ParentID != nil {
			if err := categoryExists(tx, *category.ParentID, ErrParentCategoryNotFound); err != nil {
				return err
			}
			if err := checkAncestry(tx, category.ID, *category.ParentID); err != nil {
				return err
			}
		}
		res := tx.Model(&Category{}).Where("id = ?", category.ID).Updates(map[string]any{
			"name":      category.Name,
			"slug":      category.Slug,
			"parent_id": category.ParentID,
		})
		if res.Error != nil {
			return translate(res.Error, nil)
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// DeactivateCategory hides a category from listings without removing its row.
func (r *CategoriesRepository) DeactivateCategory(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
