package auth

import (
	"context"

	"github.com/shopcraft/ecommerce-api/models"
)

// --- Mock Repository ---

type MockUserRepo struct {
	Users     map[string]*models.User
	GetErr    error
	CreateErr error
	LastSaved *models.User
}

func (m *MockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	user, ok := m.Users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.LastSaved = user
	return m.CreateErr
}
