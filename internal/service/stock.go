package service

import (
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
)

// CheckStock validates requested quantities against current stock for
// every resolved line. It is advisory only: stock is never reserved or
// decremented here, inventory is reconciled by a separate process.
func CheckStock(lines []domain.OrderLine, products map[string]domain.Product) error {
	var shortages []domain.StockShortage

	for _, line := range lines {
		product, ok := products[line.ProductNo]
		if !ok {
			continue
		}
		if line.Qty > product.InStockAmount {
			shortages = append(shortages, domain.StockShortage{
				ProductNo: product.ProductNo,
				Name:      product.Name,
				Requested: line.Qty,
				InStock:   product.InStockAmount,
			})
		}
	}

	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}

	return nil
}
