package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TableRepository struct {
	collection *mongo.Collection
	seq        sequenceAllocator
}

func NewTableRepository(db *mongo.Database) *TableRepository {
	collection := db.Collection("tables")
	return &TableRepository{
		collection: collection,
		seq: sequenceAllocator{
			collection: collection,
			field:      "table_no",
			prefix:     "T",
		},
	}
}

func (r *TableRepository) Create(ctx context.Context, table *domain.Table) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if table.ID.IsZero() {
		table.ID = primitive.NewObjectID()
	}
	table.CreatedAt = time.Now()
	table.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, table)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("table number %s already taken: %w", table.TableNo, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

func activeTableFilter() bson.M {
	return bson.M{
		"is_disabled": false,
		"is_deleted":  false,
	}
}

func (r *TableRepository) GetByNo(ctx context.Context, tableNo string) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := activeTableFilter()
	filter["table_no"] = tableNo

	var table domain.Table
	err := r.collection.FindOne(ctx, filter).Decode(&table)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("table %s: %w", tableNo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

func (r *TableRepository) GetByName(ctx context.Context, tableName string) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := activeTableFilter()
	filter["table_name"] = tableName

	var table domain.Table
	err := r.collection.FindOne(ctx, filter).Decode(&table)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("table %q: %w", tableName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	return &table, nil
}

func (r *TableRepository) ListActive(ctx context.Context) ([]domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "table_no", Value: 1}})

	cursor, err := r.collection.Find(ctx, activeTableFilter(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []domain.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}

	return tables, nil
}

func (r *TableRepository) NextTableNo(ctx context.Context) (string, error) {
	return r.seq.Next(ctx)
}
