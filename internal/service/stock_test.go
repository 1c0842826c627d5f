package service

import (
	"errors"
	"testing"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
)

func TestCheckStock(t *testing.T) {
	products := map[string]domain.Product{
		"P1": {ProductNo: "P1", Name: "Beef Noodles", InStockAmount: 5},
		"P2": {ProductNo: "P2", Name: "Iced Tea", InStockAmount: 2},
		"P3": {ProductNo: "P3", Name: "Dumplings", InStockAmount: 10},
	}

	t.Run("all lines within stock", func(t *testing.T) {
		lines := []domain.OrderLine{
			{ProductNo: "P1", Qty: 5},
			{ProductNo: "P3", Qty: 1},
		}
		if err := CheckStock(lines, products); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("every offending product is named", func(t *testing.T) {
		lines := []domain.OrderLine{
			{ProductNo: "P1", Qty: 6},
			{ProductNo: "P2", Qty: 3},
			{ProductNo: "P3", Qty: 1},
		}

		err := CheckStock(lines, products)
		if err == nil {
			t.Fatal("expected error, got none")
		}

		var stockErr *domain.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("error = %v, want InsufficientStockError", err)
		}
		if len(stockErr.Shortages) != 2 {
			t.Fatalf("got %d shortages, want 2", len(stockErr.Shortages))
		}

		first := stockErr.Shortages[0]
		if first.ProductNo != "P1" || first.Requested != 6 || first.InStock != 5 {
			t.Errorf("unexpected first shortage: %+v", first)
		}
		second := stockErr.Shortages[1]
		if second.ProductNo != "P2" || second.Requested != 3 || second.InStock != 2 {
			t.Errorf("unexpected second shortage: %+v", second)
		}
	})
}
