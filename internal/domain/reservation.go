package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationStatus string

const (
	ReservationSeated ReservationStatus = "seated"
	ReservationBooked ReservationStatus = "booked"
	// ReservationUnused is derived in availability views, never persisted.
	ReservationUnused ReservationStatus = "unused"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case ReservationSeated, ReservationBooked, ReservationUnused:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// Reservation holds one table for one date and time slot. Cancellation
// is the only deletion path; a canceled reservation stays in the
// collection but is excluded from every availability computation.
type Reservation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TableNo         string             `bson:"table_no" json:"table_no"`
	ReservationDate time.Time          `bson:"reservation_date" json:"reservation_date"`
	TimeSlot        TimeSlot           `bson:"time_slot" json:"time_slot"`
	Status          ReservationStatus  `bson:"status" json:"status"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsCanceled      bool               `bson:"is_canceled" json:"is_canceled"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
