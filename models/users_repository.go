package models

import (
	"context"

	"gorm.io/gorm"
)

type UsersRepository struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// CreateUser inserts a user. ErrDuplicate is returned when the username or
// email is already registered.
func (r *UsersRepository) CreateUser(ctx context.Context, user *User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, nil)
}

func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return &user, nil
}

// SetRoles replaces the role flags of a user.
func (r *UsersRepository) SetRoles(ctx context.Context, username string, roles Roles) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Updates(map[string]any{
		"is_admin":    roles.Admin,
		"is_supplier": roles.Supplier,
		"is_customer": roles.Customer,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
