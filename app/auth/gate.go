package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/models"
	"go.uber.org/zap"
)

const realm = `Basic realm="shop"`

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Gate checks HTTP Basic credentials against the stored password hashes.
type Gate struct {
	users  UserProvider
	logger *zap.Logger
	// absentUserHash is checked for unknown usernames so that they take as
	// long to reject as a wrong password. It uses the cost of real hashes.
	absentUserHash string
}

func NewGate(users UserProvider, bcryptCost int, logger *zap.Logger) (*Gate, error) {
	hash, err := HashPassword("absent-user", bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Gate{users: users, logger: logger, absentUserHash: hash}, nil
}

// Authenticate returns the active user matching the request's credentials.
func (g *Gate) Authenticate(r *http.Request) (*models.User, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, api.Unauthorized("Not authenticated")
	}

	user, err := g.users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			CheckPassword(g.absentUserHash, password)
			return nil, api.Unauthorized("Invalid authentication credentials")
		}
		return nil, api.Internal(err)
	}

	if !CheckPassword(user.HashedPassword, password) || !user.IsActive {
		return nil, api.Unauthorized("Invalid authentication credentials")
	}
	return user, nil
}

// Require only calls next for authenticated requests; the user is available
// to next through UserFromContext.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r)
		if err != nil {
			apiErr := api.AsError(err)
			if apiErr.Kind == api.KindUnauthorized {
				w.Header().Set("WWW-Authenticate", realm)
			} else {
				g.logger.Error("failed to authenticate request", zap.Error(err))
			}
			api.ErrorResponse(w, apiErr)
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// CurrentUser returns the user attached by Require.
func CurrentUser(r *http.Request) (*models.User, error) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return nil, api.Unauthorized("Not authenticated")
	}
	return user, nil
}
