package categories

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/app/auth"
	"github.com/shopcraft/ecommerce-api/app/slug"
	"github.com/shopcraft/ecommerce-api/models"
	"go.uber.org/zap"
)

type CategoryResponse struct {
	ID       uint   `json:"id"`
	ParentID *uint  `json:"parent_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
}

// CategoryInput is the body of the create and update endpoints.
type CategoryInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	ParentID *uint  `json:"parent_id"`
}

// Validate trims the name and makes sure a slug can be derived from it.
func (in *CategoryInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if err := api.Validate(in); err != nil {
		return err
	}
	if slug.Make(in.Name) == "" {
		return api.BadRequest("Name must contain letters or digits")
	}
	if in.ParentID != nil && *in.ParentID == 0 {
		in.ParentID = nil
	}
	return nil
}

type CategoryProvider interface {
	GetActiveCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeactivateCategory(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	repo   CategoryProvider
	logger *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, logger: logger}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetActiveCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch categories", zap.Error(err))
		api.ErrorResponse(w, api.Internal(err))
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = newCategoryResponse(&categories[i])
	}
	api.OKResponse(w, response)
}

// HandleGet returns a category by id, including deactivated ones.
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r, "category_id")
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	category, err := h.repo.GetCategoryByID(r.Context(), id)
	if err != nil {
		h.fail(w, "failed to fetch category", err)
		return
	}
	api.OKResponse(w, newCategoryResponse(category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.Authorize(r, auth.Admin); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	var input CategoryInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	category := &models.Category{
		ParentID: input.ParentID,
		Name:     input.Name,
		Slug:     slug.Make(input.Name),
	}
	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		h.fail(w, "failed to create category", err)
		return
	}

	api.TransactionResponse(w, http.StatusCreated, "Successful")
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.Authorize(r, auth.Admin); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	id, err := api.QueryID(r, "category_id")
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	var input CategoryInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	category := &models.Category{
		ID:       id,
		ParentID: input.ParentID,
		Name:     input.Name,
		Slug:     slug.Make(input.Name),
	}
	if err := h.repo.UpdateCategory(r.Context(), category); err != nil {
		h.fail(w, "failed to update category", err)
		return
	}

	api.TransactionResponse(w, http.StatusOK, "Category update is successful")
}

// HandleDelete deactivates a category; the row is kept.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.Authorize(r, auth.Admin); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	id, err := api.QueryID(r, "category_id")
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	if err := h.repo.DeactivateCategory(r.Context(), id); err != nil {
		h.fail(w, "failed to delete category", err)
		return
	}

	api.TransactionResponse(w, http.StatusOK, "Category delete is successful")
}

// fail maps repository errors onto client errors and logs the rest.
func (h *CategoryHandler) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		api.ErrorResponse(w, api.NotFound("There is no category found"))
	case errors.Is(err, models.ErrParentCategoryNotFound):
		api.ErrorResponse(w, api.NotFound("There is no parent category found"))
	case errors.Is(err, models.ErrCategoryCycle):
		api.ErrorResponse(w, api.BadRequest("A category cannot be nested under itself"))
	case errors.Is(err, models.ErrDuplicate):
		api.ErrorResponse(w, api.Conflict("A category with this name already exists"))
	default:
		h.logger.Error(msg, zap.Error(err))
		api.ErrorResponse(w, api.Internal(err))
	}
}

func newCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		Slug:     c.Slug,
		IsActive: c.IsActive,
	}
}
