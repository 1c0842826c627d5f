package repo

import (
	"context"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	NextOrderNo(ctx context.Context) (string, error)

	// CreateWithDetail persists the detail and the order referencing it
	// in one transaction; a failure leaves neither document behind.
	CreateWithDetail(ctx context.Context, order *domain.Order, detail *domain.OrderDetail) error

	GetByNo(ctx context.Context, orderNo string) (*domain.Order, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*domain.OrderDetail, error)
}
