package models

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recomputeRatingSQL sets a product's rating to the mean of its active
// reviews. Products without active reviews are not touched, so they keep the
// last computed value.
const recomputeRatingSQL = `
UPDATE products
SET rating = (
	SELECT AVG(reviews.rating) FROM reviews
	WHERE reviews.product_id = @product AND reviews.is_active
)
WHERE products.id = @product
	AND EXISTS (
		SELECT 1 FROM reviews
		WHERE reviews.product_id = @product AND reviews.is_active
	)`

// RecomputeRating refreshes the rating of a product from its active reviews.
// It must run in the transaction that changed the product's reviews, after
// the product row has been locked with lockProduct.
func RecomputeRating(tx *gorm.DB, productID uint) error {
	if err := tx.Exec(recomputeRatingSQL, sql.Named("product", productID)).Error; err != nil {
		return fmt.Errorf("failed to recompute rating of product %d: %w", productID, err)
	}
	return nil
}

// lockProduct loads a product and holds its row lock until the transaction
// ends, serializing rating recomputation per product.
func lockProduct(tx *gorm.DB, productID uint) (*Product, error) {
	var product Product
	if err := forUpdate(tx).Where("id = ?", productID).First(&product).Error; err != nil {
		return nil, translate(err, ErrProductNotFound)
	}
	return &product, nil
}

// forUpdate adds a row lock on dialects that have one. SQLite has a single
// writer per database, so it needs none.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
