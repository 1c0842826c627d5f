package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

func (s *Storage) StartSession() (mongo.Session, error) {
	return s.client.StartSession()
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// tables: business number is unique for the lifetime of the roster
	tablesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "table_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "table_name", Value: 1}},
		},
	}
	if _, err := s.database.Collection("tables").Indexes().CreateMany(ctx, tablesIndexes); err != nil {
		return fmt.Errorf("failed to create tables indexes: %w", err)
	}

	// reservations: at most one non-canceled reservation per
	// (table, date, slot); the storage layer backs up the service's
	// check-then-insert so a racing double booking hits a duplicate key
	reservationsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "table_no", Value: 1},
				{Key: "reservation_date", Value: 1},
				{Key: "time_slot", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_canceled": false}),
		},
		{
			Keys: bson.D{
				{Key: "reservation_date", Value: 1},
				{Key: "time_slot", Value: 1},
			},
		},
	}
	if _, err := s.database.Collection("reservations").Indexes().CreateMany(ctx, reservationsIndexes); err != nil {
		return fmt.Errorf("failed to create reservations indexes: %w", err)
	}

	// orders: duplicate order numbers from concurrent allocation must
	// surface as a duplicate-key error the caller retries on
	ordersIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection("orders").Indexes().CreateMany(ctx, ordersIndexes); err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}

	detailsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection("order_details").Indexes().CreateMany(ctx, detailsIndexes); err != nil {
		return fmt.Errorf("failed to create order_details indexes: %w", err)
	}

	productsIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "product_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category_no", Value: 1}},
		},
	}
	if _, err := s.database.Collection("products").Indexes().CreateMany(ctx, productsIndexes); err != nil {
		return fmt.Errorf("failed to create products indexes: %w", err)
	}

	couponsIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection("coupons").Indexes().CreateMany(ctx, couponsIndexes); err != nil {
		return fmt.Errorf("failed to create coupons indexes: %w", err)
	}

	return nil
}
