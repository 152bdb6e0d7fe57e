package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/event"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/query"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/repository"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/storage"
	apperrors "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/errors"
)

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo     repository.ProductRepository
	store    storage.Storage
	producer *event.Producer
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, store storage.Storage, producer *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Brand       string
	Category    string
	Price       float64
}

// UpdateProductInput holds the parameters for partially updating a product.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Brand       *string
	Category    *string
	Price       *float64
}

// AttachImageInput holds the parameters for attaching a product image.
type AttachImageInput struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// CreateProduct creates a new product with the given input.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Brand:       input.Brand,
		Category:    input.Category,
		Price:       input.Price,
		Reviews:     []domain.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product.ID = id

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID.Hex()),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.Hex()),
		slog.String("name", product.Name),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns the products matching the translated query along with
// the total count of matches before pagination.
func (s *ProductService) ListProducts(ctx context.Context, opts *query.Options) ([]domain.Product, int64, error) {
	products, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// UpdateProduct applies partial updates to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, input *UpdateProductInput) (*domain.Product, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, apperrors.InvalidInput("product name must not be empty")
	}
	if input.Description != nil && *input.Description == "" {
		return nil, apperrors.InvalidInput("product description must not be empty")
	}
	if input.Brand != nil && *input.Brand == "" {
		return nil, apperrors.InvalidInput("product brand must not be empty")
	}
	if input.Category != nil && *input.Category == "" {
		return nil, apperrors.InvalidInput("product category must not be empty")
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	product, err := s.repo.Update(ctx, id, repository.ProductUpdate{
		Name:        input.Name,
		Description: input.Description,
		Brand:       input.Brand,
		Category:    input.Category,
		Price:       input.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID.Hex()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID.Hex()),
	)

	return product, nil
}

// DeleteProduct removes a product by its ID. If the product has a hosted
// image, the image is deleted from the storage backend after the document is
// gone; a storage failure is logged but does not fail the operation.
func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if product.ImageKey != "" {
		if err := s.store.Delete(ctx, product.ImageKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete hosted product image",
				slog.String("product_id", id.Hex()),
				slog.String("image_key", product.ImageKey),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := s.producer.PublishProductDeleted(ctx, id.Hex()); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id.Hex()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id.Hex()),
	)

	return nil
}

// AttachImage uploads a product image to the storage backend and records the
// hosted URL on the product. The product is looked up first so a bad id fails
// before any bytes leave the process.
func (s *ProductService) AttachImage(ctx context.Context, id primitive.ObjectID, input *AttachImageInput) (*domain.Product, error) {
	if !domain.IsAllowedImageType(input.ContentType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported image type %q", input.ContentType))
	}
	if input.Size > domain.MaxImageSize {
		return nil, apperrors.InvalidInput("image exceeds the maximum allowed size")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for image upload: %w", err)
	}

	result, err := s.store.Upload(ctx, &storage.UploadInput{
		Folder:      domain.UploadFolder,
		Filename:    input.Filename,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}

	if err := s.repo.SetImage(ctx, id, result.URL, result.Key); err != nil {
		return nil, fmt.Errorf("save product image url: %w", err)
	}

	// Replacing an image leaves the previous one behind on the media host;
	// remove it once the new one is recorded.
	if product.ImageKey != "" && product.ImageKey != result.Key {
		if err := s.store.Delete(ctx, product.ImageKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete replaced product image",
				slog.String("product_id", id.Hex()),
				slog.String("image_key", product.ImageKey),
				slog.String("error", err.Error()),
			)
		}
	}

	product.ImageURL = result.URL
	product.ImageKey = result.Key

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID.Hex()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product image attached",
		slog.String("product_id", product.ID.Hex()),
		slog.String("image_url", result.URL),
	)

	return product, nil
}
