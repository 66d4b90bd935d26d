package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/models"
	"go.uber.org/zap"
)

type UserResponse struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsActive   bool   `json:"is_active"`
	IsAdmin    bool   `json:"is_admin"`
	IsSupplier bool   `json:"is_supplier"`
	IsCustomer bool   `json:"is_customer"`
}

type MeResponse struct {
	User UserResponse `json:"User"`
}

// CreateUserInput is the sign-up payload. bcrypt ignores everything past
// 72 bytes, hence maxbytes.
type CreateUserInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// Validate trims the input and checks every field.
func (in *CreateUserInput) Validate() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	return api.Validate(in)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
}

type AuthHandler struct {
	repo       UserStore
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthHandler(r UserStore, bcryptCost int, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		repo:       r,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// HandleCreateUser registers a new customer account.
func (h *AuthHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input CreateUserInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	hash, err := HashPassword(input.Password, h.bcryptCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		api.ErrorResponse(w, api.Internal(err))
		return
	}

	user := &models.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: hash,
		IsActive:       true,
		IsCustomer:     true,
	}
	if err := h.repo.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			api.ErrorResponse(w, api.Conflict("Username or email is already registered"))
			return
		}
		h.logger.Error("failed to create user", zap.String("username", input.Username), zap.Error(err))
		api.ErrorResponse(w, api.Internal(err))
		return
	}

	api.TransactionResponse(w, http.StatusCreated, "Successful")
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := CurrentUser(r)
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}
	api.OKResponse(w, MeResponse{User: NewUserResponse(user)})
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
		Email:      u.Email,
		IsActive:   u.IsActive,
		IsAdmin:    u.IsAdmin,
		IsSupplier: u.IsSupplier,
		IsCustomer: u.IsCustomer,
	}
}
