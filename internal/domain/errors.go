package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ValidationError aggregates every bad field of a request into one
// message instead of failing on the first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

type StockShortage struct {
	ProductNo string `json:"product_no"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	InStock   int    `json:"in_stock"`
}

// InsufficientStockError names every offending product, not just the
// first one found.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (requested %d, in stock %d)", s.Name, s.Requested, s.InStock))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}
