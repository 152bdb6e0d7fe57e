// Package query translates free-form list query parameters into the
// structured pieces a Mongo find needs: a filter document, a field
// projection, a sort order, and a pagination window, plus the pagination
// links derived from them.
//
// The grammar is closed: only known product fields and a fixed set of
// operator suffixes are accepted, and anything else is rejected rather than
// passed through to the store uninterpreted.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FarhanaRafi/MarketPlace-MongoDB-BE/internal/domain"
	apperrors "github.com/FarhanaRafi/MarketPlace-MongoDB-BE/pkg/errors"
)

// Pagination defaults and bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Reserved query keys that configure the window rather than the filter.
const (
	keyLimit  = "limit"
	keySkip   = "skip"
	keySort   = "sort"
	keyFields = "fields"
)

// operator suffixes of the filter grammar, mapped to their Mongo operators.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"ne":  "$ne",
}

// Options is the translated form of a list request.
type Options struct {
	Filter     bson.D
	Projection bson.D
	Sort       bson.D
	Limit      int64
	Skip       int64

	// raw retains the original parameters so pagination links can rebuild
	// the query string with only the window keys rewritten.
	raw url.Values
}

// Parse translates URL query values into find options. Absent limit/skip use
// defaults; limit=0 is accepted and yields an empty page. Unknown fields and
// unrecognized operator suffixes are rejected.
func Parse(values url.Values) (*Options, error) {
	fields := domain.FilterableFields()

	opts := &Options{
		Filter: bson.D{},
		Limit:  DefaultLimit,
		Skip:   0,
		raw:    values,
	}

	for key := range values {
		value := values.Get(key)

		switch key {
		case keyLimit:
			limit, err := strconv.ParseInt(value, 10, 64)
			if err != nil || limit < 0 {
				return nil, apperrors.InvalidInput("limit must be a non-negative integer")
			}
			if limit > MaxLimit {
				limit = MaxLimit
			}
			opts.Limit = limit

		case keySkip:
			skip, err := strconv.ParseInt(value, 10, 64)
			if err != nil || skip < 0 {
				return nil, apperrors.InvalidInput("skip must be a non-negative integer")
			}
			opts.Skip = skip

		case keySort:
			sort, err := parseSort(value, fields)
			if err != nil {
				return nil, err
			}
			opts.Sort = sort

		case keyFields:
			projection, err := parseProjection(value, fields)
			if err != nil {
				return nil, err
			}
			opts.Projection = projection

		default:
			cond, err := parseCondition(key, value, fields)
			if err != nil {
				return nil, err
			}
			opts.Filter = mergeCondition(opts.Filter, cond)
		}
	}

	if opts.Sort == nil {
		// Stable default order; _id grows monotonically with insertion.
		opts.Sort = bson.D{{Key: "_id", Value: 1}}
	}

	return opts, nil
}

// parseSort handles "sort=field" (ascending) and "sort=-field" (descending).
// The _id field is always appended as a tie-break so pagination order is
// stable for documents comparing equal on the sort field.
func parseSort(value string, fields map[string]domain.FieldKind) (bson.D, error) {
	direction := 1
	field := value
	if strings.HasPrefix(value, "-") {
		direction = -1
		field = value[1:]
	}

	if _, ok := fields[field]; !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot sort by unknown field %q", field))
	}

	sort := bson.D{{Key: field, Value: direction}}
	if field != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}
	return sort, nil
}

// parseProjection handles "fields=name,price".
func parseProjection(value string, fields map[string]domain.FieldKind) (bson.D, error) {
	var projection bson.D
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if field == "reviews" {
			projection = append(projection, bson.E{Key: field, Value: 1})
			continue
		}
		if _, ok := fields[field]; !ok {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cannot project unknown field %q", field))
		}
		projection = append(projection, bson.E{Key: field, Value: 1})
	}
	return projection, nil
}

// parseCondition handles a single filter parameter: either a bare field name
// (equality) or field_op with op from the closed operator set.
func parseCondition(key, value string, fields map[string]domain.FieldKind) (bson.E, error) {
	// Bare field: equality.
	if kind, ok := fields[key]; ok {
		coerced, err := coerceValue(key, kind, value)
		if err != nil {
			return bson.E{}, err
		}
		return bson.E{Key: key, Value: coerced}, nil
	}

	idx := strings.LastIndex(key, "_")
	if idx <= 0 {
		return bson.E{}, apperrors.InvalidInput(fmt.Sprintf("unknown query parameter %q", key))
	}

	field, suffix := key[:idx], key[idx+1:]
	kind, ok := fields[field]
	if !ok {
		return bson.E{}, apperrors.InvalidInput(fmt.Sprintf("unknown query parameter %q", key))
	}

	if suffix == "like" {
		if kind != domain.FieldText {
			return bson.E{}, apperrors.InvalidInput(fmt.Sprintf("operator \"like\" is not supported on field %q", field))
		}
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
		return bson.E{Key: field, Value: pattern}, nil
	}

	op, ok := operators[suffix]
	if !ok {
		return bson.E{}, apperrors.InvalidInput(fmt.Sprintf("unrecognized filter operator %q", suffix))
	}

	coerced, err := coerceValue(field, kind, value)
	if err != nil {
		return bson.E{}, err
	}
	return bson.E{Key: field, Value: bson.D{{Key: op, Value: coerced}}}, nil
}

// coerceValue converts the raw string value to the field's native type.
func coerceValue(field string, kind domain.FieldKind, value string) (any, error) {
	switch kind {
	case domain.FieldNumeric:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("field %q requires a numeric value", field))
		}
		return n, nil
	case domain.FieldTimestamp:
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("field %q requires an RFC 3339 timestamp", field))
		}
		return t, nil
	default:
		return value, nil
	}
}

// mergeCondition adds a condition to the filter. Multiple operator conditions
// on the same field (e.g. price_gte + price_lte) merge into one range
// document.
func mergeCondition(filter bson.D, cond bson.E) bson.D {
	newOps, condIsOps := cond.Value.(bson.D)
	if condIsOps {
		for i, existing := range filter {
			if existing.Key != cond.Key {
				continue
			}
			if ops, ok := existing.Value.(bson.D); ok {
				filter[i].Value = append(ops, newOps...)
				return filter
			}
		}
	}
	return append(filter, cond)
}
