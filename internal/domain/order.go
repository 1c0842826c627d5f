package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderUnpaid OrderStatus = "unpaid"
	OrderPaid   OrderStatus = "paid"
)

type DetailStatus string

const (
	DetailNotServed DetailStatus = "not-served"
	DetailServed    DetailStatus = "served"
)

// OrderLine is a snapshot of a product taken at order creation time.
// Later catalog edits must never alter a persisted line.
type OrderLine struct {
	ProductNo      string  `bson:"product_no" json:"product_no"`
	Name           string  `bson:"name" json:"name"`
	Price          float64 `bson:"price" json:"price"`
	Qty            int     `bson:"qty" json:"qty"`
	Note           string  `bson:"note,omitempty" json:"note,omitempty"`
	ProductionTime int     `bson:"production_time" json:"production_time"`
	CategoryNo     string  `bson:"category_no" json:"category_no"`
	CategoryName   string  `bson:"category_name" json:"category_name"`
	Subtotal       float64 `bson:"subtotal" json:"subtotal"`
}

// OrderDetail is owned 1:1 by an Order and is never shared.
type OrderDetail struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Lines           []OrderLine        `bson:"lines" json:"lines"`
	TotalTime       int                `bson:"total_time" json:"total_time"`
	TotalPrice      float64            `bson:"total_price" json:"total_price"`
	DiscountPercent int                `bson:"discount_percent" json:"discount_percent"`
	PayableAmount   float64            `bson:"payable_amount" json:"payable_amount"`
	CouponNo        string             `bson:"coupon_no,omitempty" json:"coupon_no,omitempty"`
	Status          DetailStatus       `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNo       string             `bson:"order_no" json:"order_no"`
	Status        OrderStatus        `bson:"status" json:"status"`
	TimeSlot      TimeSlot           `bson:"time_slot" json:"time_slot"`
	TableNo       string             `bson:"table_no" json:"table_no"`
	OrderDetailID primitive.ObjectID `bson:"order_detail_id" json:"order_detail_id"`
	PaymentMethod string             `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	Rating        *int               `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// ComposedOrder is an Order with its table and detail populated, the
// shape returned after a commit.
type ComposedOrder struct {
	Order
	Table  *Table       `json:"table"`
	Detail *OrderDetail `json:"detail"`
}

// OrderProjection is the priced result of a preview: the same totals
// and lines a committed order would carry, without any identifiers.
type OrderProjection struct {
	Table           *Table      `json:"table"`
	TimeSlot        TimeSlot    `json:"time_slot"`
	Lines           []OrderLine `json:"lines"`
	TotalTime       int         `json:"total_time"`
	TotalPrice      float64     `json:"total_price"`
	DiscountPercent int         `json:"discount_percent"`
	PayableAmount   float64     `json:"payable_amount"`
	CouponNo        string      `json:"coupon_no,omitempty"`
}
