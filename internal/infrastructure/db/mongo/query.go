package mongo

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vogueline/agency-api/internal/core/domain"
)

func newID() string {
	return primitive.NewObjectID().Hex()
}

// searchClause matches term as a case-insensitive substring of any field.
// The term is quoted so user input is never interpreted as a pattern.
func searchClause(term string, fields ...string) bson.A {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(term)), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}

// findOptions turns the (already normalised) filter into sort, skip and limit.
// _id is appended as a tie-breaker so pages are stable.
func findOptions(f domain.ListFilter) *options.FindOptions {
	dir := -1
	if f.SortOrder == "asc" {
		dir = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: f.SortField, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(f.Skip()).
		SetLimit(int64(f.PageSize))
}

// findPage runs the count and the page query for filter.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, f domain.ListFilter) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	cur, err := coll.Find(ctx, filter, findOptions(f))
	if err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, f.PageSize)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
