package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/service"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/httputil"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/validator"
)

// ReviewHandler handles HTTP requests for the review endpoints nested under
// a product.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// AddReviewRequest is the JSON request body for adding a review.
type AddReviewRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// UpdateReviewRequest is the JSON request body for updating a review.
type UpdateReviewRequest struct {
	Comment *string `json:"comment" validate:"omitempty,min=1,max=2000"`
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// AddReview handles POST /products/{productId}/reviews
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.AddReview(r.Context(), productID, &service.AddReviewInput{
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// ListReviews handles GET /products/{productId}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// GetReview handles GET /products/{productId}/reviews/{reviewId}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	reviewID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "reviewId"))
	if !ok {
		return
	}

	review, err := h.service.GetReview(r.Context(), productID, reviewID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, review)
}

// UpdateReview handles PUT /products/{productId}/reviews/{reviewId}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	reviewID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "reviewId"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.UpdateReview(r.Context(), productID, reviewID, &service.UpdateReviewInput{
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// RemoveReview handles DELETE /products/{productId}/reviews/{reviewId}
func (h *ReviewHandler) RemoveReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	reviewID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "reviewId"))
	if !ok {
		return
	}

	product, err := h.service.RemoveReview(r.Context(), productID, reviewID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}
