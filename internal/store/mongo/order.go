package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository struct {
	storage *Storage
	orders  *mongo.Collection
	details *mongo.Collection
	seq     sequenceAllocator
}

func NewOrderRepository(storage *Storage) *OrderRepository {
	orders := storage.Database().Collection("orders")
	return &OrderRepository{
		storage: storage,
		orders:  orders,
		details: storage.Database().Collection("order_details"),
		seq: sequenceAllocator{
			collection: orders,
			field:      "order_no",
			prefix:     "O",
		},
	}
}

func (r *OrderRepository) NextOrderNo(ctx context.Context) (string, error) {
	return r.seq.Next(ctx)
}

// CreateWithDetail inserts the detail and the order referencing it in
// one transaction so a mid-sequence failure cannot leave an orphaned
// detail document.
func (r *OrderRepository) CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	now := time.Now()
	if detail.ID.IsZero() {
		detail.ID = primitive.NewObjectID()
	}
	detail.CreatedAt = now
	detail.UpdatedAt = now

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.OrderDetailID = detail.ID
	order.CreatedAt = now
	order.UpdatedAt = now

	session, err := r.storage.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.details.InsertOne(sc, detail); err != nil {
			return nil, fmt.Errorf("failed to create order detail: %w", err)
		}
		if _, err := r.orders.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("order number %s already taken: %w", order.OrderNo, domain.ErrConflict)
		}
		return err
	}

	return nil
}

func (r *OrderRepository) GetByNo(ctx context.Context, orderNo string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order domain.Order
	err := r.orders.FindOne(ctx, bson.M{"order_no": orderNo}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("order %s: %w", orderNo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) GetDetail(ctx context.Context, id primitive.ObjectID) (*domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var detail domain.OrderDetail
	err := r.details.FindOne(ctx, bson.M{"_id": id}).Decode(&detail)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("order detail %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order detail: %w", err)
	}

	return &detail, nil
}
