package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/event"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/repository"
	apperrors "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/errors"
)

// ReviewService implements the business logic for review operations on
// products. Reviews live embedded in the product document, so every operation
// is scoped to a product id.
type ReviewService struct {
	repo     repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// AddReviewInput holds the parameters for adding a review.
type AddReviewInput struct {
	Comment string
	Rating  int
}

// UpdateReviewInput holds the parameters for partially updating a review.
type UpdateReviewInput struct {
	Comment *string
	Rating  *int
}

// AddReview appends a new review to the product and returns the updated
// product.
func (s *ReviewService) AddReview(ctx context.Context, productID primitive.ObjectID, input *AddReviewInput) (*domain.Product, error) {
	if input.Comment == "" {
		return nil, apperrors.InvalidInput("review comment is required")
	}
	if !domain.IsValidRating(input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	review := domain.Review{
		ID:      primitive.NewObjectID(),
		Comment: input.Comment,
		Rating:  input.Rating,
	}

	product, err := s.repo.AppendReview(ctx, productID, review)
	if err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}

	if err := s.producer.PublishReviewAdded(ctx, productID.Hex(), review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.review_added event",
			slog.String("product_id", productID.Hex()),
			slog.String("review_id", review.ID.Hex()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review added",
		slog.String("product_id", productID.Hex()),
		slog.String("review_id", review.ID.Hex()),
		slog.Int("rating", review.Rating),
	)

	return product, nil
}

// ListReviews returns all reviews of a product.
func (s *ReviewService) ListReviews(ctx context.Context, productID primitive.ObjectID) ([]domain.Review, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product for reviews: %w", err)
	}
	if product.Reviews == nil {
		return []domain.Review{}, nil
	}
	return product.Reviews, nil
}

// GetReview returns a single review of a product.
func (s *ReviewService) GetReview(ctx context.Context, productID, reviewID primitive.ObjectID) (*domain.Review, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product for review: %w", err)
	}

	idx := product.FindReview(reviewID)
	if idx < 0 {
		return nil, apperrors.NotFound("review", reviewID.Hex())
	}
	return &product.Reviews[idx], nil
}

// UpdateReview applies partial updates to an embedded review and returns the
// updated product. The product is looked up first so a missing product and a
// missing review report different resources.
func (s *ReviewService) UpdateReview(ctx context.Context, productID, reviewID primitive.ObjectID, input *UpdateReviewInput) (*domain.Product, error) {
	if input.Comment != nil && *input.Comment == "" {
		return nil, apperrors.InvalidInput("review comment must not be empty")
	}
	if input.Rating != nil && !domain.IsValidRating(*input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("get product for review update: %w", err)
	}

	product, err := s.repo.UpdateReview(ctx, productID, reviewID, repository.ReviewUpdate{
		Comment: input.Comment,
		Rating:  input.Rating,
	})
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.InfoContext(ctx, "review updated",
		slog.String("product_id", productID.Hex()),
		slog.String("review_id", reviewID.Hex()),
	)

	return product, nil
}

// RemoveReview deletes a review from the product and returns the updated
// product. Removing a review id that is not present leaves the product
// unchanged.
func (s *ReviewService) RemoveReview(ctx context.Context, productID, reviewID primitive.ObjectID) (*domain.Product, error) {
	product, err := s.repo.RemoveReview(ctx, productID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("remove review: %w", err)
	}

	s.logger.InfoContext(ctx, "review removed",
		slog.String("product_id", productID.Hex()),
		slog.String("review_id", reviewID.Hex()),
	)

	return product, nil
}
