package auth

import (
	"net/http"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/models"
)

// Role decides whether a user may call an endpoint.
type Role func(u *models.User) bool

var (
	Admin    Role = func(u *models.User) bool { return u.IsAdmin }
	Customer Role = func(u *models.User) bool { return u.IsCustomer }
	// CatalogManager covers everyone allowed to create products.
	CatalogManager Role = func(u *models.User) bool { return u.IsAdmin || u.IsSupplier }
)

// Authorize returns the authenticated user when it has the role.
func Authorize(r *http.Request, role Role) (*models.User, error) {
	user, err := CurrentUser(r)
	if err != nil {
		return nil, err
	}
	if !role(user) {
		return nil, api.Forbidden("You are not authorized to use this method")
	}
	return user, nil
}
