package mongo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Business numbers are fixed-width strings: a short prefix followed by
// a zero-padded 9-digit suffix, e.g. "O000000042". They identify
// records to staff independently of Mongo's internal ids.
const seqSuffixWidth = 9

func formatBusinessNo(prefix string, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, seqSuffixWidth, n)
}

func parseBusinessNo(prefix, no string) (int64, error) {
	if !strings.HasPrefix(no, prefix) {
		return 0, fmt.Errorf("business number %q does not carry prefix %q", no, prefix)
	}
	n, err := strconv.ParseInt(no[len(prefix):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("business number %q has a non-numeric suffix: %w", no, err)
	}
	return n, nil
}

func nextBusinessNo(prefix, last string, count int64) (string, error) {
	if count == 0 {
		return formatBusinessNo(prefix, 1), nil
	}
	n, err := parseBusinessNo(prefix, last)
	if err != nil {
		return "", err
	}
	return formatBusinessNo(prefix, n+1), nil
}

// sequenceAllocator derives the next business number for a collection
// by counting documents and incrementing the newest one's suffix. Two
// concurrent callers can compute the same number; the unique index on
// the field turns that into a duplicate-key error the caller retries.
type sequenceAllocator struct {
	collection *mongo.Collection
	field      string
	prefix     string
}

func (a sequenceAllocator) Next(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := a.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", fmt.Errorf("failed to count %s documents: %w", a.collection.Name(), err)
	}

	if count == 0 {
		return formatBusinessNo(a.prefix, 1), nil
	}

	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{a.field: 1})

	var doc bson.M
	if err := a.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to read latest %s document: %w", a.collection.Name(), err)
	}

	last, _ := doc[a.field].(string)
	no, err := nextBusinessNo(a.prefix, last, count)
	if err != nil {
		return "", fmt.Errorf("failed to derive next %s number: %w", a.collection.Name(), err)
	}

	return no, nil
}
