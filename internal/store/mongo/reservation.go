package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReservationRepository struct {
	collection *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{
		collection: db.Collection("reservations"),
	}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if reservation.ID.IsZero() {
		reservation.ID = primitive.NewObjectID()
	}
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("table %s already reserved for %s %s: %w",
				reservation.TableNo, domain.FormatDate(reservation.ReservationDate), reservation.TimeSlot, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var reservation domain.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reservation %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return &reservation, nil
}

func (r *ReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	reservation.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"reservation_date": reservation.ReservationDate,
			"time_slot":        reservation.TimeSlot,
			"status":           reservation.Status,
			"name":             reservation.Name,
			"phone":            reservation.Phone,
			"updated_at":       reservation.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": reservation.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("table %s already reserved for %s %s: %w",
				reservation.TableNo, domain.FormatDate(reservation.ReservationDate), reservation.TimeSlot, domain.ErrConflict)
		}
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation %s: %w", reservation.ID.Hex(), domain.ErrNotFound)
	}

	return nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"is_canceled": true,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation %s: %w", id.Hex(), domain.ErrNotFound)
	}

	return nil
}

func (r *ReservationRepository) FindActive(ctx context.Context, date time.Time, slot domain.TimeSlot, status domain.ReservationStatus) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"is_canceled":      false,
		"reservation_date": date,
	}
	if slot != "" {
		filter["time_slot"] = slot
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []domain.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *ReservationRepository) FindConflicting(ctx context.Context, tableNo string, date time.Time, slot domain.TimeSlot, exclude primitive.ObjectID) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"table_no":         tableNo,
		"reservation_date": date,
		"time_slot":        slot,
		"is_canceled":      false,
	}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}

	var reservation domain.Reservation
	err := r.collection.FindOne(ctx, filter).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for conflicting reservation: %w", err)
	}

	return &reservation, nil
}
