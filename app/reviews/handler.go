package reviews

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/app/auth"
	"github.com/shopcraft/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Product struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Slug   string  `json:"slug"`
	Rating float64 `json:"rating"`
}

type ReviewResponse struct {
	ID          uint      `json:"id"`
	Product     *Product  `json:"product,omitempty"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment"`
	CommentDate time.Time `json:"comment_date"`
	IsActive    bool      `json:"is_active"`
}

type ProductReviewsResponse struct {
	Product Product          `json:"product"`
	Reviews []ReviewResponse `json:"reviews"`
}

// ReviewInput is the body of POST /review/add_review. The reviewer is always
// the authenticated caller.
type ReviewInput struct {
	ProductID uint             `json:"product_id" validate:"required"`
	Rating    *decimal.Decimal `json:"rating" validate:"required,gte=0,lte=10,decimal_places=2"`
	Comment   string           `json:"comment" validate:"required,max=255"`
}

func (in *ReviewInput) Validate() error {
	in.Comment = strings.TrimSpace(in.Comment)

	return api.Validate(in)
}

type ReviewProvider interface {
	GetActiveReviews(ctx context.Context) ([]models.Review, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByProductSlug(ctx context.Context, slug string) (*models.Product, []models.Review, error)
	AddReview(ctx context.Context, review *models.Review) error
	DeactivateReview(ctx context.Context, id uint) (*models.Review, error)
}

type ReviewHandler struct {
	repo   ReviewProvider
	logger *zap.Logger
}

func NewReviewHandler(r ReviewProvider, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{repo: r, logger: logger}
}

func (h *ReviewHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repo.GetActiveReviews(r.Context())
	if err != nil {
		h.fail(w, "failed to fetch reviews", err)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		response[i] = newReviewResponse(&reviews[i])
		response[i].Product = newProduct(&reviews[i].Product)
	}
	api.OKResponse(w, response)
}

// HandleGet returns a review by id, including deactivated ones.
func (h *ReviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r, "review_id")
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	review, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "failed to fetch review", err)
		return
	}

	response := newReviewResponse(review)
	response.Product = newProduct(&review.Product)
	api.OKResponse(w, response)
}

func (h *ReviewHandler) HandleGetByProduct(w http.ResponseWriter, r *http.Request) {
	product, reviews, err := h.repo.GetByProductSlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.fail(w, "failed to fetch product reviews", err)
		return
	}

	response := ProductReviewsResponse{
		Product: *newProduct(product),
		Reviews: make([]ReviewResponse, len(reviews)),
	}
	for i := range reviews {
		response.Reviews[i] = newReviewResponse(&reviews[i])
	}
	api.OKResponse(w, response)
}

// HandleAdd stores a review written by the calling customer.
func (h *ReviewHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	user, err := auth.Authorize(r, auth.Customer)
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	var input ReviewInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	review := &models.Review{
		UserID:    user.ID,
		ProductID: input.ProductID,
		Rating:    *input.Rating,
		Comment:   input.Comment,
	}
	if err := h.repo.AddReview(r.Context(), review); err != nil {
		h.fail(w, "failed to add review", err)
		return
	}

	h.logger.Info("review added",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", review.ProductID),
		zap.Uint("user_id", user.ID),
	)
	api.TransactionResponse(w, http.StatusCreated, "Successful")
}

// HandleDelete deactivates a review. Only admins moderate reviews.
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := auth.Authorize(r, auth.Admin)
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	id, err := api.QueryID(r, "review_id")
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	review, err := h.repo.DeactivateReview(r.Context(), id)
	if err != nil {
		h.fail(w, "failed to delete review", err)
		return
	}

	h.logger.Info("review deactivated",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", review.ProductID),
		zap.Uint("admin_id", user.ID),
	)
	api.TransactionResponse(w, http.StatusOK, "Review delete is successful")
}

func (h *ReviewHandler) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, models.ErrReviewNotFound):
		api.ErrorResponse(w, api.NotFound("There is no review found"))
	case errors.Is(err, models.ErrProductNotFound):
		api.ErrorResponse(w, api.NotFound("There is no product found"))
	default:
		h.logger.Error(msg, zap.Error(err))
		api.ErrorResponse(w, api.Internal(err))
	}
}

func newReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		Rating:      r.Rating.InexactFloat64(),
		Comment:     r.Comment,
		CommentDate: r.CreatedAt,
		IsActive:    r.IsActive,
	}
}

func newProduct(p *models.Product) *Product {
	return &Product{
		ID:     p.ID,
		Name:   p.Name,
		Slug:   p.Slug,
		Rating: p.Rating,
	}
}
