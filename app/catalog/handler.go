package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopcraft/ecommerce-api/app/api"
	"github.com/shopcraft/ecommerce-api/app/auth"
	"github.com/shopcraft/ecommerce-api/app/slug"
	"github.com/shopcraft/ecommerce-api/models"
	"go.uber.org/zap"
)

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	ImageURL    string   `json:"image_url"`
	Stock       int      `json:"stock"`
	SupplierID  *uint    `json:"supplier_id"`
	Rating      float64  `json:"rating"`
	IsActive    bool     `json:"is_active"`
	Category    Category `json:"category"`
}

// ProductInput is the body of the create and update endpoints. Category is
// the id of an existing category.
type ProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Price       int    `json:"price" validate:"gte=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=500"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Category    uint   `json:"category" validate:"required"`
}

func (in *ProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := api.Validate(in); err != nil {
		return err
	}
	if slug.Make(in.Name) == "" {
		return api.BadRequest("Name must contain letters or digits")
	}
	return nil
}

type ProductProvider interface {
	GetAvailableProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetByCategorySlug(ctx context.Context, slug string) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeactivateProduct(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	repo   ProductProvider
	logger *zap.Logger
}

func NewCatalogHandler(r ProductProvider, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:   r,
		logger: logger,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse filters
	var filters models.ProductFilters
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		val, err := strconv.Atoi(priceStr)
		if err != nil {
			api.ErrorResponse(w, api.BadRequest("Invalid price_lt"))
			return
		}
		filters.PriceLessThan = &val
	}

	res, err := h.repo.GetAvailableProducts(r.Context(), filters)
	if err != nil {
		h.fail(w, "failed to fetch products", err)
		return
	}
	api.OKResponse(w, newProductList(res))
}

// HandleGetByCategory lists the products of a category and its direct
// subcategories.
func (h *CatalogHandler) HandleGetByCategory(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetByCategorySlug(r.Context(), r.PathValue("category_slug"))
	if err != nil {
		h.fail(w, "failed to fetch products by category", err)
		return
	}
	api.OKResponse(w, newProductList(res))
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetBySlug(r.Context(), r.PathValue("product_slug"))
	if err != nil {
		h.fail(w, "failed to fetch product", err)
		return
	}
	api.OKResponse(w, newProduct(product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, err := auth.Authorize(r, auth.CatalogManager)
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	var input ProductInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	product := input.toModel()
	if user.IsSupplier && !user.IsAdmin {
		product.SupplierID = &user.ID
	}
	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		h.fail(w, "failed to create product", err)
		return
	}

	api.TransactionResponse(w, http.StatusCreated, "Successful")
}

// HandleUpdate replaces every client editable field of a product. Suppliers
// may only update the products they supply.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := auth.Authorize(r, auth.CatalogManager)
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	current, err := h.repo.GetBySlug(r.Context(), r.PathValue("product_slug"))
	if err != nil {
		h.fail(w, "failed to fetch product", err)
		return
	}
	if !user.IsAdmin && (current.SupplierID == nil || *current.SupplierID != user.ID) {
		api.ErrorResponse(w, api.Forbidden("You are not authorized to use this method"))
		return
	}

	var input ProductInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	product := input.toModel()
	product.ID = current.ID
	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		h.fail(w, "failed to update product", err)
		return
	}

	api.TransactionResponse(w, http.StatusOK, "Product update is successful")
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.Authorize(r, auth.Admin); err != nil {
		api.ErrorResponse(w, err)
		return
	}

	id, err := api.QueryID(r, "product_id")
	if err != nil {
		api.ErrorResponse(w, err)
		return
	}

	if err := h.repo.DeactivateProduct(r.Context(), id); err != nil {
		h.fail(w, "failed to delete product", err)
		return
	}

	api.TransactionResponse(w, http.StatusOK, "Product delete is successful")
}

func (h *CatalogHandler) fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		api.ErrorResponse(w, api.NotFound("There is no product found"))
	case errors.Is(err, models.ErrCategoryNotFound):
		api.ErrorResponse(w, api.NotFound("There is no category found"))
	case errors.Is(err, models.ErrDuplicate):
		api.ErrorResponse(w, api.Conflict("A product with this name already exists"))
	default:
		h.logger.Error(msg, zap.Error(err))
		api.ErrorResponse(w, api.Internal(err))
	}
}

func (in *ProductInput) toModel() *models.Product {
	return &models.Product{
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		CategoryID:  in.Category,
	}
}

func newProductList(res []models.Product) []Product {
	products := make([]Product, len(res))
	for i := range res {
		products[i] = newProduct(&res[i])
	}
	return products
}

func newProduct(p *models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		SupplierID:  p.SupplierID,
		Rating:      p.Rating,
		IsActive:    p.IsActive,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
	}
}
