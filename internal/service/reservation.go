package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/metrics"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ReservationService struct {
	tableRepo repo.TableRepository
	resRepo   repo.ReservationRepository
	logger    *zap.SugaredLogger
}

func NewReservationService(
	tableRepo repo.TableRepository,
	resRepo repo.ReservationRepository,
	logger *zap.SugaredLogger,
) *ReservationService {
	return &ReservationService{
		tableRepo: tableRepo,
		resRepo:   resRepo,
		logger:    logger,
	}
}

type AvailabilityQuery struct {
	Date   time.Time
	Slot   domain.TimeSlot          // optional
	Status domain.ReservationStatus // optional
}

// resolveSlot keeps the historical fallback: a status filter without an
// explicit slot resolves to morning.
func resolveSlot(q AvailabilityQuery) domain.TimeSlot {
	if q.Slot == "" && q.Status != "" {
		return domain.SlotMorning
	}
	return q.Slot
}

// Availability derives the occupancy state of every active table for a
// date and time slot from the sparse reservation records.
func (s *ReservationService) Availability(ctx context.Context, q AvailabilityQuery) ([]domain.TableAvailability, error) {
	slot := resolveSlot(q)

	tables, err := s.tableRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	statusFilter := q.Status
	if statusFilter == domain.ReservationUnused {
		// "unused" is derived, not stored; fetch everything active and
		// subtract below
		statusFilter = ""
	}

	reservations, err := s.resRepo.FindActive(ctx, q.Date, slot, statusFilter)
	if err != nil {
		return nil, err
	}

	// every table appears at most once; the exclusivity invariant means
	// one active reservation per table and slot
	byTable := make(map[string]domain.Reservation, len(reservations))
	for _, r := range reservations {
		if _, ok := byTable[r.TableNo]; !ok {
			byTable[r.TableNo] = r
		}
	}

	result := make([]domain.TableAvailability, 0, len(tables))
	for _, t := range tables {
		reservation, reserved := byTable[t.TableNo]

		switch {
		case q.Status == domain.ReservationUnused:
			if reserved {
				continue
			}
			result = append(result, unusedRow(t))
		case q.Status == domain.ReservationSeated || q.Status == domain.ReservationBooked:
			if !reserved {
				continue
			}
			result = append(result, reservedRow(t, reservation))
		default:
			if reserved {
				result = append(result, reservedRow(t, reservation))
			} else {
				result = append(result, unusedRow(t))
			}
		}
	}

	return result, nil
}

func unusedRow(t domain.Table) domain.TableAvailability {
	return domain.TableAvailability{
		TableNo:      t.TableNo,
		TableName:    t.TableName,
		SeatCount:    t.SeatCount,
		IsWindowSeat: t.IsWindowSeat,
		Status:       domain.ReservationUnused,
	}
}

func reservedRow(t domain.Table, r domain.Reservation) domain.TableAvailability {
	return domain.TableAvailability{
		TableNo:         t.TableNo,
		TableName:       t.TableName,
		SeatCount:       t.SeatCount,
		IsWindowSeat:    t.IsWindowSeat,
		Status:          r.Status,
		ReservationID:   &r.ID,
		ReservationDate: &r.ReservationDate,
		TimeSlot:        r.TimeSlot,
		Name:            r.Name,
		Phone:           r.Phone,
	}
}

type SeatInput struct {
	TableNo string
	Date    time.Time
	Slot    domain.TimeSlot
}

type BookInput struct {
	TableNo string
	Date    time.Time
	Slot    domain.TimeSlot
	Name    string
	Phone   string
}

// Seat creates a walk-in seating: an immediate reservation with no
// guest contact details.
func (s *ReservationService) Seat(ctx context.Context, in SeatInput) (*domain.Reservation, error) {
	return s.create(ctx, &domain.Reservation{
		TableNo:         in.TableNo,
		ReservationDate: in.Date,
		TimeSlot:        in.Slot,
		Status:          domain.ReservationSeated,
	})
}

// Book creates an advance booking with guest contact details.
func (s *ReservationService) Book(ctx context.Context, in BookInput) (*domain.Reservation, error) {
	return s.create(ctx, &domain.Reservation{
		TableNo:         in.TableNo,
		ReservationDate: in.Date,
		TimeSlot:        in.Slot,
		Status:          domain.ReservationBooked,
		Name:            in.Name,
		Phone:           in.Phone,
	})
}

func (s *ReservationService) create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if _, err := s.tableRepo.GetByNo(ctx, reservation.TableNo); err != nil {
		return nil, err
	}

	existing, err := s.resRepo.FindConflicting(ctx, reservation.TableNo, reservation.ReservationDate, reservation.TimeSlot, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.ReservationConflicts.Inc()
		return nil, conflictError(reservation)
	}

	if err := s.resRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Infow("reservation created",
		"table_no", reservation.TableNo,
		"date", domain.FormatDate(reservation.ReservationDate),
		"time_slot", reservation.TimeSlot,
		"status", reservation.Status,
	)

	return reservation, nil
}

type EditInput struct {
	Date  *time.Time
	Slot  *domain.TimeSlot
	Name  *string
	Phone *string
}

// Edit updates a non-canceled reservation, re-checking the exclusivity
// invariant against every record except the one being edited.
func (s *ReservationService) Edit(ctx context.Context, id primitive.ObjectID, in EditInput) (*domain.Reservation, error) {
	reservation, err := s.resRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.IsCanceled {
		return nil, fmt.Errorf("reservation %s: %w", id.Hex(), domain.ErrNotFound)
	}

	if in.Date != nil {
		reservation.ReservationDate = *in.Date
	}
	if in.Slot != nil {
		reservation.TimeSlot = *in.Slot
	}
	if in.Name != nil {
		reservation.Name = *in.Name
	}
	if in.Phone != nil {
		reservation.Phone = *in.Phone
	}

	existing, err := s.resRepo.FindConflicting(ctx, reservation.TableNo, reservation.ReservationDate, reservation.TimeSlot, reservation.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.ReservationConflicts.Inc()
		return nil, conflictError(reservation)
	}

	if err := s.resRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}

// Cancel flips is_canceled, returning the table to unused for that
// slot. Reservations are never physically removed.
func (s *ReservationService) Cancel(ctx context.Context, id primitive.ObjectID) error {
	reservation, err := s.resRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation.IsCanceled {
		return fmt.Errorf("reservation %s: %w", id.Hex(), domain.ErrNotFound)
	}

	if err := s.resRepo.Cancel(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("reservation canceled", "reservation_id", id.Hex(), "table_no", reservation.TableNo)

	return nil
}

func conflictError(r *domain.Reservation) error {
	return fmt.Errorf("table %s already has a reservation for %s %s: %w",
		r.TableNo, domain.FormatDate(r.ReservationDate), r.TimeSlot, domain.ErrConflict)
}
