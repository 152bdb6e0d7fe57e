package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/query"
	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/repository"
	apperrors "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/errors"
)

// CollectionName is the Mongo collection holding product documents.
const CollectionName = "products"

// ProductRepository implements repository.ProductRepository on a Mongo
// collection.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a Mongo-backed product repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(CollectionName)}
}

// Create inserts a new product document.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert product: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var p domain.Product
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("product", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

// List runs the translated query against the collection. The returned total
// reflects the filter only, never the pagination window; a zero limit skips
// the find entirely and returns an empty page with the real total.
func (r *ProductRepository) List(ctx context.Context, opts *query.Options) ([]domain.Product, int64, error) {
	total, err := r.coll.CountDocuments(ctx, opts.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	if opts.Limit == 0 {
		return []domain.Product{}, total, nil
	}

	findOpts := options.Find().
		SetSort(opts.Sort).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)
	if opts.Projection != nil {
		findOpts.SetProjection(opts.Projection)
	}

	cursor, err := r.coll.Find(ctx, opts.Filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode products: %w", err)
	}

	return products, total, nil
}

// Update overlays the given fields onto the product via an atomic $set and
// returns the updated document.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields repository.ProductUpdate) (*domain.Product, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if fields.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *fields.Name})
	}
	if fields.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *fields.Description})
	}
	if fields.Brand != nil {
		set = append(set, bson.E{Key: "brand", Value: *fields.Brand})
	}
	if fields.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *fields.Category})
	}
	if fields.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *fields.Price})
	}

	return r.findOneAndUpdate(ctx, id,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
	)
}

// Delete removes a product document.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("product", id.Hex())
	}
	return nil
}

// SetImage records the uploaded image reference. The product may have been
// deleted between the upload and this save; that surfaces as NotFound rather
// than an upsert.
func (r *ProductRepository) SetImage(ctx context.Context, id primitive.ObjectID, url, key string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "imageUrl", Value: url},
			{Key: "imageKey", Value: key},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return fmt.Errorf("set image url: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("product", id.Hex())
	}
	return nil
}

// AppendReview pushes a review onto the product's review array.
func (r *ProductRepository) AppendReview(ctx context.Context, productID primitive.ObjectID, review domain.Review) (*domain.Product, error) {
	return r.findOneAndUpdate(ctx, productID,
		bson.D{{Key: "_id", Value: productID}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		},
	)
}

// UpdateReview overlays the given fields onto the embedded review through a
// positional $set, so the overlay is atomic in the store and cannot clobber
// sibling reviews. A nil result means the review id is not present in this
// product's array; callers that need to distinguish a missing product must
// check for the product first.
func (r *ProductRepository) UpdateReview(ctx context.Context, productID, reviewID primitive.ObjectID, fields repository.ReviewUpdate) (*domain.Product, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if fields.Comment != nil {
		set = append(set, bson.E{Key: "reviews.$.comment", Value: *fields.Comment})
	}
	if fields.Rating != nil {
		set = append(set, bson.E{Key: "reviews.$.rating", Value: *fields.Rating})
	}

	p, err := r.findOneAndUpdate(ctx, productID,
		bson.D{
			{Key: "_id", Value: productID},
			{Key: "reviews._id", Value: reviewID},
		},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("review", reviewID.Hex())
		}
		return nil, err
	}
	return p, nil
}

// RemoveReview pulls the review with the given id out of the review array.
// Pulling an id that is not present matches the product anyway, so the
// operation is an idempotent no-op returning the unchanged product.
func (r *ProductRepository) RemoveReview(ctx context.Context, productID, reviewID primitive.ObjectID) (*domain.Product, error) {
	return r.findOneAndUpdate(ctx, productID,
		bson.D{{Key: "_id", Value: productID}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "reviews", Value: bson.D{{Key: "_id", Value: reviewID}}}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		},
	)
}

// findOneAndUpdate applies the update and decodes the post-update document.
func (r *ProductRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, filter, update bson.D) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Product
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound("product", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}
