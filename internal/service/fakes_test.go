package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTableRepo struct {
	tables []domain.Table
}

func (f *fakeTableRepo) Create(_ context.Context, table *domain.Table) error {
	for _, t := range f.tables {
		if t.TableNo == table.TableNo {
			return fmt.Errorf("table number %s already taken: %w", table.TableNo, domain.ErrConflict)
		}
	}
	if table.ID.IsZero() {
		table.ID = primitive.NewObjectID()
	}
	f.tables = append(f.tables, *table)
	return nil
}

func (f *fakeTableRepo) GetByNo(_ context.Context, tableNo string) (*domain.Table, error) {
	for i := range f.tables {
		t := f.tables[i]
		if t.TableNo == tableNo && !t.IsDisabled && !t.IsDeleted {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("table %s: %w", tableNo, domain.ErrNotFound)
}

func (f *fakeTableRepo) GetByName(_ context.Context, tableName string) (*domain.Table, error) {
	for i := range f.tables {
		t := f.tables[i]
		if t.TableName == tableName && !t.IsDisabled && !t.IsDeleted {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("table %q: %w", tableName, domain.ErrNotFound)
}

func (f *fakeTableRepo) ListActive(_ context.Context) ([]domain.Table, error) {
	var active []domain.Table
	for _, t := range f.tables {
		if !t.IsDisabled && !t.IsDeleted {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].TableNo < active[j].TableNo })
	return active, nil
}

func (f *fakeTableRepo) NextTableNo(_ context.Context) (string, error) {
	return fmt.Sprintf("T%09d", len(f.tables)+1), nil
}

type fakeProductRepo struct {
	products map[string]domain.Product
}

func (f *fakeProductRepo) GetByProductNos(_ context.Context, productNos []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, no := range productNos {
		if p, ok := f.products[no]; ok && !p.IsDisabled && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCouponRepo struct {
	coupons map[string]domain.Coupon
}

func (f *fakeCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	if c, ok := f.coupons[code]; ok && !c.IsDisabled && !c.IsDeleted {
		return &c, nil
	}
	return nil, fmt.Errorf("coupon %q: %w", code, domain.ErrNotFound)
}

type fakeOrderRepo struct {
	orders       []domain.Order
	details      map[primitive.ObjectID]domain.OrderDetail
	allocations  int
	conflictOnce bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{details: make(map[primitive.ObjectID]domain.OrderDetail)}
}

func (f *fakeOrderRepo) NextOrderNo(_ context.Context) (string, error) {
	f.allocations++
	return fmt.Sprintf("O%09d", f.allocations), nil
}

func (f *fakeOrderRepo) CreateWithDetail(_ context.Context, order *domain.Order, detail *domain.OrderDetail) error {
	if f.conflictOnce {
		f.conflictOnce = false
		return fmt.Errorf("order number %s already taken: %w", order.OrderNo, domain.ErrConflict)
	}
	for _, o := range f.orders {
		if o.OrderNo == order.OrderNo {
			return fmt.Errorf("order number %s already taken: %w", order.OrderNo, domain.ErrConflict)
		}
	}

	now := time.Now()
	if detail.ID.IsZero() {
		detail.ID = primitive.NewObjectID()
	}
	detail.CreatedAt = now
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.OrderDetailID = detail.ID
	order.CreatedAt = now

	// store copies: later catalog or caller mutation must not reach
	// the persisted documents
	stored := *detail
	stored.Lines = append([]domain.OrderLine(nil), detail.Lines...)
	f.details[detail.ID] = stored
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetByNo(_ context.Context, orderNo string) (*domain.Order, error) {
	for i := range f.orders {
		if f.orders[i].OrderNo == orderNo {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", orderNo, domain.ErrNotFound)
}

func (f *fakeOrderRepo) GetDetail(_ context.Context, id primitive.ObjectID) (*domain.OrderDetail, error) {
	if d, ok := f.details[id]; ok {
		return &d, nil
	}
	return nil, fmt.Errorf("order detail %s: %w", id.Hex(), domain.ErrNotFound)
}

type fakeReservationRepo struct {
	reservations map[primitive.ObjectID]*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[primitive.ObjectID]*domain.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) error {
	for _, r := range f.reservations {
		if !r.IsCanceled &&
			r.TableNo == reservation.TableNo &&
			r.ReservationDate.Equal(reservation.ReservationDate) &&
			r.TimeSlot == reservation.TimeSlot {
			return fmt.Errorf("table %s already reserved: %w", reservation.TableNo, domain.ErrConflict)
		}
	}
	if reservation.ID.IsZero() {
		reservation.ID = primitive.NewObjectID()
	}
	reservation.CreatedAt = time.Now()
	stored := *reservation
	f.reservations[reservation.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	if r, ok := f.reservations[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, fmt.Errorf("reservation %s: %w", id.Hex(), domain.ErrNotFound)
}

func (f *fakeReservationRepo) Update(_ context.Context, reservation *domain.Reservation) error {
	if _, ok := f.reservations[reservation.ID]; !ok {
		return fmt.Errorf("reservation %s: %w", reservation.ID.Hex(), domain.ErrNotFound)
	}
	stored := *reservation
	f.reservations[reservation.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id primitive.ObjectID) error {
	r, ok := f.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %s: %w", id.Hex(), domain.ErrNotFound)
	}
	r.IsCanceled = true
	return nil
}

func (f *fakeReservationRepo) FindActive(_ context.Context, date time.Time, slot domain.TimeSlot, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.IsCanceled || !r.ReservationDate.Equal(date) {
			continue
		}
		if slot != "" && r.TimeSlot != slot {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReservationRepo) FindConflicting(_ context.Context, tableNo string, date time.Time, slot domain.TimeSlot, exclude primitive.ObjectID) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.IsCanceled || r.ID == exclude {
			continue
		}
		if r.TableNo == tableNo && r.ReservationDate.Equal(date) && r.TimeSlot == slot {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

type publishedMessage struct {
	channel string
	payload []byte
}

type fakeBroker struct {
	published []publishedMessage
}

func (f *fakeBroker) Publish(_ context.Context, channel string, payload []byte) error {
	f.published = append(f.published, publishedMessage{channel: channel, payload: payload})
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }
