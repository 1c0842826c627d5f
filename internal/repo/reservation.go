package repo

import (
	"context"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	Cancel(ctx context.Context, id primitive.ObjectID) error

	// FindActive returns non-canceled reservations for a date. Empty
	// slot or status means no filtering on that field.
	FindActive(ctx context.Context, date time.Time, slot domain.TimeSlot, status domain.ReservationStatus) ([]domain.Reservation, error)

	// FindConflicting returns a non-canceled reservation holding the
	// same table, date and slot, excluding the given id, or nil.
	FindConflicting(ctx context.Context, tableNo string, date time.Time, slot domain.TimeSlot, exclude primitive.ObjectID) (*domain.Reservation, error)
}
