package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductNo      string             `bson:"product_no" json:"product_no"`
	Name           string             `bson:"name" json:"name"`
	Price          float64            `bson:"price" json:"price"`
	ProductionTime int                `bson:"production_time" json:"production_time"`
	InStockAmount  int                `bson:"in_stock_amount" json:"in_stock_amount"`
	SafeStockAmount int               `bson:"safe_stock_amount" json:"safe_stock_amount"`
	CategoryNo     string             `bson:"category_no" json:"category_no"`
	CategoryName   string             `bson:"category_name" json:"category_name"`
	IsDisabled     bool               `bson:"is_disabled" json:"is_disabled"`
	IsDeleted      bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
