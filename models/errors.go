package models

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrParentCategoryNotFound is returned when a category references a missing parent.
	ErrParentCategoryNotFound = errors.New("parent category not found")
	// ErrCategoryCycle is returned when a category would become its own ancestor.
	ErrCategoryCycle = errors.New("category cannot be nested under itself")
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicate is returned when a unique slug, username or email is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps gorm errors onto the package's sentinel errors. A nil
// notFound keeps gorm.ErrRecordNotFound as is.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
