package server

import (
	"net/http"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/app/auth"
	"github.com/shopcraft/ecommerce-api/app/catalog"
	"github.com/shopcraft/ecommerce-api/app/categories"
	"github.com/shopcraft/ecommerce-api/app/config"
	"github.com/shopcraft/ecommerce-api/app/metrics"
	"github.com/shopcraft/ecommerce-api/app/middleware"
	"github.com/shopcraft/ecommerce-api/app/reviews"
	"github.com/shopcraft/ecommerce-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the HTTP surface needs. DB is the process wide pool;
// repositories bind it to each request's context.
type Deps struct {
	DB         *gorm.DB
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	BcryptCost int
	RateLimit  config.RateLimitConfig
}

// NewHandler wires repositories, handlers and middleware into one handler.
func NewHandler(d Deps) (http.Handler, error) {
	// Initialize repositories
	users := models.NewUsersRepository(d.DB)
	categoriesRepo := models.NewCategoriesRepository(d.DB)
	products := models.NewProductsRepository(d.DB)
	reviewsRepo := models.NewReviewsRepository(d.DB)

	// Initialize handlers
	gate, err := auth.NewGate(users, d.BcryptCost, d.Logger)
	if err != nil {
		return nil, err
	}
	authHandler := auth.NewAuthHandler(users, d.BcryptCost, d.Logger)
	catHandler := categories.NewCategoryHandler(categoriesRepo, d.Logger)
	prodHandler := catalog.NewCatalogHandler(products, d.Logger)
	revHandler := reviews.NewReviewHandler(reviewsRepo, d.Logger)

	// Set up routing
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleHealth)
	mux.Handle("GET /metrics", d.Metrics.Handler())

	mux.HandleFunc("GET /category/all_categories", catHandler.HandleGetAll)
	mux.HandleFunc("GET /category/detail/{category_id}", catHandler.HandleGet)
	mux.HandleFunc("POST /category/create", gate.Require(catHandler.HandleCreate))
	mux.HandleFunc("PUT /category/update_category", gate.Require(catHandler.HandleUpdate))
	mux.HandleFunc("DELETE /category/delete", gate.Require(catHandler.HandleDelete))

	mux.HandleFunc("GET /products/{$}", prodHandler.HandleGet)
	mux.HandleFunc("POST /products/create", gate.Require(prodHandler.HandleCreate))
	mux.HandleFunc("GET /products/{category_slug}", prodHandler.HandleGetByCategory)
	mux.HandleFunc("GET /products/detail/{product_slug}", prodHandler.HandleGetProduct)
	mux.HandleFunc("PUT /products/detail/{product_slug}", gate.Require(prodHandler.HandleUpdate))
	mux.HandleFunc("DELETE /products/delete", gate.Require(prodHandler.HandleDelete))

	mux.HandleFunc("POST /auth/{$}", authHandler.HandleCreateUser)
	mux.HandleFunc("GET /auth/users/me", gate.Require(authHandler.HandleMe))

	mux.HandleFunc("GET /review/all_reviews", revHandler.HandleGetAll)
	mux.HandleFunc("GET /review/detail/{review_id}", revHandler.HandleGet)
	mux.HandleFunc("POST /review/add_review", gate.Require(revHandler.HandleAdd))
	mux.HandleFunc("PATCH /review/delete_reviews", gate.Require(revHandler.HandleDelete))
	mux.HandleFunc("GET /review/products_reviews/{slug}", revHandler.HandleGetByProduct)

	var limiter *middleware.ClientLimiter
	if d.RateLimit.RPS > 0 {
		limiter = middleware.NewClientLimiter(d.RateLimit.RPS, d.RateLimit.Burst)
	}

	return withMiddleware(mux, d.Logger, d.Metrics, limiter), nil
}

// withMiddleware wraps h so that panics recovered inside it are still
// logged and counted as 500s.
func withMiddleware(h http.Handler, log *zap.Logger, m *metrics.Metrics, limiter *middleware.ClientLimiter) http.Handler {
	return middleware.Chain(h,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Metrics(m),
		middleware.Recover(log),
		middleware.RateLimit(limiter),
	)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	api.OKResponse(w, map[string]string{"STATUS": "OK"})
}
