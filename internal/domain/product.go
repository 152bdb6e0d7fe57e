package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry stored as a single document with its reviews
// embedded. Reviews never exist outside their parent product.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Brand       string             `json:"brand" bson:"brand"`
	Category    string             `json:"category" bson:"category"`
	Price       float64            `json:"price" bson:"price"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ImageKey    string             `json:"-" bson:"imageKey,omitempty"`
	Reviews     []Review           `json:"reviews" bson:"reviews"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Review is an embedded sub-document addressed by its own ObjectID within the
// parent product's review array. Insertion order is append order.
type Review struct {
	ID      primitive.ObjectID `json:"id" bson:"_id"`
	Comment string             `json:"comment" bson:"comment"`
	Rating  int                `json:"rating" bson:"rating"`
}

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// IsValidRating reports whether the rating falls within the allowed range.
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// FindReview locates a review by id with a linear scan over the product's
// review array. Returns the index, or -1 when the id is not present in this
// product's array (even if it exists under a different product).
func (p *Product) FindReview(id primitive.ObjectID) int {
	for i := range p.Reviews {
		if p.Reviews[i].ID == id {
			return i
		}
	}
	return -1
}

// FieldKind describes how filter values against a product field are coerced.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumeric
	FieldTimestamp
)

// FilterableFields lists the product fields the list endpoint accepts in
// filter, sort, and projection parameters, keyed by wire name.
func FilterableFields() map[string]FieldKind {
	return map[string]FieldKind{
		"name":        FieldText,
		"description": FieldText,
		"brand":       FieldText,
		"category":    FieldText,
		"imageUrl":    FieldText,
		"price":       FieldNumeric,
		"createdAt":   FieldTimestamp,
		"updatedAt":   FieldTimestamp,
	}
}
