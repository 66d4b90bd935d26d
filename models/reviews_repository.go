package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewsRepository struct {
	db *gorm.DB
}

func NewReviewsRepository(db *gorm.DB) *ReviewsRepository {
	return &ReviewsRepository{db: db}
}

func (r *ReviewsRepository) GetActiveReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("is_active = ?", true).
		Order("id").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetByID returns a review whether or not it is active.
func (r *ReviewsRepository) GetByID(ctx context.Context, id uint) (*Review, error) {
	var review Review
	if err := r.db.WithContext(ctx).Preload("Product").First(&review, id).Error; err != nil {
		return nil, translate(err, ErrReviewNotFound)
	}
	return &review, nil
}

// GetByProductSlug returns an active product together with its active reviews.
func (r *ReviewsRepository) GetByProductSlug(ctx context.Context, slug string) (*Product, []Review, error) {
	db := r.db.WithContext(ctx)

	var product Product
	if err := db.Where("slug = ? AND is_active = ?", slug, true).First(&product).Error; err != nil {
		return nil, nil, translate(err, ErrProductNotFound)
	}

	var reviews []Review
	if err := db.Where("product_id = ? AND is_active = ?", product.ID, true).
		Order("id").
		Find(&reviews).Error; err != nil {
		return nil, nil, err
	}
	return &product, reviews, nil
}

// AddReview stores a review for an active product and refreshes the
// product's rating in the same transaction.
func (r *ReviewsRepository) AddReview(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := lockProduct(tx, review.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return ErrProductNotFound
		}

		review.IsActive = true
		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			return err
		}
		return RecomputeRating(tx, review.ProductID)
	})
}

// DeactivateReview hides a review and refreshes its product's rating in the
// same transaction. The deactivated review is returned.
func (r *ReviewsRepository) DeactivateReview(ctx context.Context, id uint) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, id).Error; err != nil {
			return translate(err, ErrReviewNotFound)
		}
		if _, err := lockProduct(tx, review.ProductID); err != nil {
			return err
		}

		if err := tx.Model(&Review{}).Where("id = ?", review.ID).Update("is_active", false).Error; err != nil {
			return err
		}
		review.IsActive = false
		return RecomputeRating(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
