package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/query"
)

// ProductUpdate holds the product fields of a partial update. Nil fields are
// left untouched in the stored document.
type ProductUpdate struct {
	Name        *string
	Description *string
	Brand       *string
	Category    *string
	Price       *float64
}

// ReviewUpdate holds the review fields of a partial update. Nil fields are
// left untouched in the embedded review.
type ReviewUpdate struct {
	Comment *string
	Rating  *int
}

// ProductRepository defines the persistence operations for products and
// their embedded reviews.
type ProductRepository interface {
	// Create inserts a new product and returns its generated id.
	Create(ctx context.Context, p *domain.Product) (primitive.ObjectID, error)

	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)

	// List returns products matching the translated query options along with
	// the total count of matches ignoring the pagination window.
	List(ctx context.Context, opts *query.Options) ([]domain.Product, int64, error)

	// Update overlays the given fields onto an existing product and returns
	// the updated document.
	Update(ctx context.Context, id primitive.ObjectID, fields ProductUpdate) (*domain.Product, error)

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// SetImage records the uploaded image URL and storage key on a product.
	SetImage(ctx context.Context, id primitive.ObjectID, url, key string) error

	// AppendReview atomically appends a review to the product's review array
	// and returns the updated product.
	AppendReview(ctx context.Context, productID primitive.ObjectID, review domain.Review) (*domain.Product, error)

	// UpdateReview atomically overlays the given fields onto the embedded
	// review addressed by reviewID and returns the updated product.
	UpdateReview(ctx context.Context, productID, reviewID primitive.ObjectID, fields ReviewUpdate) (*domain.Product, error)

	// RemoveReview atomically removes the review with the given id from the
	// product's review array and returns the updated product. Removing an id
	// that is not present is a no-op that still returns the product.
	RemoveReview(ctx context.Context, productID, reviewID primitive.ObjectID) (*domain.Product, error)
}
