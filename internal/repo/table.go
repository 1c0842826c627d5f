package repo

import (
	"context"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
)

type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	GetByNo(ctx context.Context, tableNo string) (*domain.Table, error)
	GetByName(ctx context.Context, tableName string) (*domain.Table, error)
	ListActive(ctx context.Context) ([]domain.Table, error)
	NextTableNo(ctx context.Context) (string, error)
}
