package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	PriceLessThan *int
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// available restricts a query to products that can be bought.
func available(db *gorm.DB) *gorm.DB {
	return db.Where("products.is_active = ? AND products.stock > ?", true, 0)
}

func (r *ProductsRepository) GetAvailableProducts(ctx context.Context, filters ProductFilters) ([]Product, error) {
	query := r.db.WithContext(ctx).
		Scopes(available).
		Preload("Category")

	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	var products []Product
	if err := query.Order("products.id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByCategorySlug returns the available products of an active category and
// of its direct active subcategories.
func (r *ProductsRepository) GetByCategorySlug(ctx context.Context, slug string) ([]Product, error) {
	db := r.db.WithContext(ctx)

	var category Category
	if err := db.Where("slug = ? AND is_active = ?", slug, true).First(&category).Error; err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}

	var children []uint
	if err := db.Model(&Category{}).
		Where("parent_id = ? AND is_active = ?", category.ID, true).
		Pluck("id", &children).Error; err != nil {
		return nil, err
	}

	var products []Product
	if err := db.Scopes(available).
		Preload("Category").
		Where("products.category_id IN ?", append([]uint{category.ID}, children...)).
		Order("products.id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error; err != nil {
		return nil, translate(err, ErrProductNotFound)
	}
	return &product, nil
}

// CreateProduct inserts a product after checking that its category exists.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := categoryExists(tx, product.CategoryID, ErrCategoryNotFound); err != nil {
			return err
		}
		product.IsActive = true
		return translate(tx.Omit(clause.Associations).Create(product).Error, nil)
	})
}

// UpdateProduct writes the client editable columns of a product. The rating
// and ownership columns are left alone.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := categoryExists(tx, product.CategoryID, ErrCategoryNotFound); err != nil {
			return err
		}
		res := tx.Model(&Product{}).Where("id = ?", product.ID).Updates(map[string]any{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"stock":       product.Stock,
			"category_id": product.CategoryID,
		})
		if res.Error != nil {
			return translate(res.Error, nil)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// DeactivateProduct hides a product from the catalog without removing its row.
func (r *ProductsRepository) DeactivateProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
