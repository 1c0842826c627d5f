package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) GetByProductNos(ctx context.Context, productNos []string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"product_no":  bson.M{"$in": productNos},
		"is_disabled": false,
		"is_deleted":  false,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

type CouponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{
		collection: db.Collection("coupons"),
	}
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"code":        code,
		"is_disabled": false,
		"is_deleted":  false,
	}

	var coupon domain.Coupon
	err := r.collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("coupon %q: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}
