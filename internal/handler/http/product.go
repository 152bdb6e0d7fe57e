package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/query"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/service"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/httputil"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	baseURL string
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler. baseURL is the
// externally visible address used when building pagination links.
func NewProductHandler(svc *service.ProductService, baseURL string, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateProductRequest is the JSON request body for creating a product.
// Price is a pointer so that an explicit 0 passes required-presence checks;
// only an absent price fails.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=500"`
	Description string   `json:"description" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

// UpdateProductRequest is the JSON request body for updating a product.
// All fields are optional; absent fields are left untouched, but any field
// that is present must satisfy the same rules as at creation.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=500"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Brand       *string  `json:"brand" validate:"omitempty,min=1"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// ProductListResponse is the envelope for a product listing.
type ProductListResponse struct {
	Links         *query.Links     `json:"links"`
	Total         int64            `json:"total"`
	NumberOfPages int64            `json:"numberOfPages"`
	Products      []domain.Product `json:"products"`
}

// --- Handlers ---

// ListProducts handles GET /products
// @Summary List products
// @Description Returns a filtered, projected, sorted, paginated product listing
// @Tags products
// @Produce json
// @Param limit query int false "Page size (max 100)" default(20)
// @Param skip query int false "Documents to skip" default(0)
// @Param sort query string false "Sort field, prefix with - for descending"
// @Param fields query string false "Comma-separated projection fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := query.Parse(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, total, err := h.service.ListProducts(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := ProductListResponse{
		Links:         opts.Links(h.baseURL+r.URL.Path, total),
		Total:         total,
		NumberOfPages: opts.NumberOfPages(total),
		Products:      products,
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /products/{productId}
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param productId path string true "Product ObjectID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /products/{productId} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /products
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "Product to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	input := &service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       *req.Price,
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"id": product.ID.Hex()})
}

// UpdateProduct handles PUT /products/{productId}
// @Summary Update a product
// @Description Partially updates a product; all fields are optional
// @Tags products
// @Accept json
// @Produce json
// @Param productId path string true "Product ObjectID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /products/{productId} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	input := &service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
	}

	product, err := h.service.UpdateProduct(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{productId}
// @Summary Delete a product
// @Tags products
// @Param productId path string true "Product ObjectID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /products/{productId} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
