package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Table struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableNo      string             `bson:"table_no" json:"table_no"`
	TableName    string             `bson:"table_name" json:"table_name"`
	SeatCount    int                `bson:"seat_count" json:"seat_count"`
	IsWindowSeat bool               `bson:"is_window_seat" json:"is_window_seat"`
	IsDisabled   bool               `bson:"is_disabled" json:"is_disabled"`
	IsDeleted    bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// TableAvailability is one row of the per-table status view for a
// date and time slot. Reservation fields are set only when a matching
// active reservation exists.
type TableAvailability struct {
	TableNo         string              `bson:"table_no" json:"table_no"`
	TableName       string              `bson:"table_name" json:"table_name"`
	SeatCount       int                 `bson:"seat_count" json:"seat_count"`
	IsWindowSeat    bool                `bson:"is_window_seat" json:"is_window_seat"`
	Status          ReservationStatus   `bson:"status" json:"status"`
	ReservationID   *primitive.ObjectID `bson:"reservation_id,omitempty" json:"reservation_id,omitempty"`
	ReservationDate *time.Time          `bson:"reservation_date,omitempty" json:"reservation_date,omitempty"`
	TimeSlot        TimeSlot            `bson:"time_slot,omitempty" json:"time_slot,omitempty"`
	Name            string              `bson:"name,omitempty" json:"name,omitempty"`
	Phone           string              `bson:"phone,omitempty" json:"phone,omitempty"`
}
