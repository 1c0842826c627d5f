package repo

import (
	"context"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
)

// ProductRepository is read-only: catalog mutation belongs to the
// catalog service, this core only snapshots products into orders.
type ProductRepository interface {
	GetByProductNos(ctx context.Context, productNos []string) ([]domain.Product, error)
}

type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}
