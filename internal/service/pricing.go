package service

import (
	"fmt"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
)

// Discount is the single discount mechanism applied to an order. A
// combo bills category B at (100-Percent)% while everything else stays
// at full price; a flat coupon multiplies the whole subtotal.
type Discount struct {
	Kind      domain.CouponKind
	Percent   int
	CategoryA string
	CategoryB string
	CouponNo  string
}

type Pricing struct {
	TotalTime       int
	TotalPrice      float64
	DiscountPercent int
	PayableAmount   float64
}

// PriceLines computes aggregate totals over snapshot lines. TotalPrice
// is the pre-discount sum; TotalTime sums production time once per
// distinct line, not scaled by quantity.
func PriceLines(lines []domain.OrderLine, discount *Discount) (Pricing, error) {
	var p Pricing

	for _, line := range lines {
		p.TotalPrice += line.Subtotal
		p.TotalTime += line.ProductionTime
	}

	if discount == nil {
		p.PayableAmount = p.TotalPrice
		return p, nil
	}

	if discount.Percent < 1 || discount.Percent > 100 {
		return Pricing{}, domain.NewValidationError(
			fmt.Sprintf("discount percent must be an integer between 1 and 100, got %d", discount.Percent))
	}

	p.DiscountPercent = discount.Percent
	factor := float64(100-discount.Percent) / 100

	switch discount.Kind {
	case domain.CouponFlat:
		p.PayableAmount = p.TotalPrice * factor
	case domain.CouponCombo:
		var categoryB float64
		for _, line := range lines {
			if line.CategoryNo == discount.CategoryB {
				categoryB += line.Subtotal
			}
		}
		p.PayableAmount = (p.TotalPrice - categoryB) + categoryB*factor
	default:
		return Pricing{}, domain.NewValidationError(fmt.Sprintf("unknown coupon kind %q", discount.Kind))
	}

	return p, nil
}

// buildLine snapshots a product into an order line at the current
// catalog price.
func buildLine(product domain.Product, qty int, note string) domain.OrderLine {
	return domain.OrderLine{
		ProductNo:      product.ProductNo,
		Name:           product.Name,
		Price:          product.Price,
		Qty:            qty,
		Note:           note,
		ProductionTime: product.ProductionTime,
		CategoryNo:     product.CategoryNo,
		CategoryName:   product.CategoryName,
		Subtotal:       product.Price * float64(qty),
	}
}
