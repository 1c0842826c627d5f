package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponKind string

const (
	// CouponFlat discounts the whole order subtotal.
	CouponFlat CouponKind = "flat"
	// CouponCombo bills category A at full price and category B at
	// (100-discount)% of price.
	CouponCombo CouponKind = "combo"
)

// Coupon definitions are owned by an external catalog service; this
// core only reads them when an order supplies a coupon code.
type Coupon struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CouponNo        string             `bson:"coupon_no" json:"coupon_no"`
	Code            string             `bson:"code" json:"code"`
	Kind            CouponKind         `bson:"kind" json:"kind"`
	DiscountPercent int                `bson:"discount_percent" json:"discount_percent"`
	CategoryA       string             `bson:"category_a,omitempty" json:"category_a,omitempty"`
	CategoryB       string             `bson:"category_b,omitempty" json:"category_b,omitempty"`
	IsDisabled      bool               `bson:"is_disabled" json:"is_disabled"`
	IsDeleted       bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
