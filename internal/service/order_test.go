package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/queue"
	"go.uber.org/zap"
)

func newOrderFixture() (*OrderService, *fakeTableRepo, *fakeProductRepo, *fakeCouponRepo, *fakeOrderRepo, *fakeBroker) {
	tables := &fakeTableRepo{tables: []domain.Table{
		{TableNo: "T000000001", TableName: "A1", SeatCount: 4},
	}}
	products := &fakeProductRepo{products: map[string]domain.Product{
		"P1": {ProductNo: "P1", Name: "Beef Noodles", Price: 100, ProductionTime: 15, InStockAmount: 10, CategoryNo: "C1", CategoryName: "Mains"},
		"P2": {ProductNo: "P2", Name: "Iced Tea", Price: 50, ProductionTime: 5, InStockAmount: 20, CategoryNo: "C2", CategoryName: "Drinks"},
	}}
	coupons := &fakeCouponRepo{coupons: map[string]domain.Coupon{
		"TENOFF": {CouponNo: "CP000000001", Code: "TENOFF", Kind: domain.CouponFlat, DiscountPercent: 10},
		"COMBO":  {CouponNo: "CP000000002", Code: "COMBO", Kind: domain.CouponCombo, DiscountPercent: 90, CategoryA: "C1", CategoryB: "C2"},
	}}
	orders := newFakeOrderRepo()
	broker := &fakeBroker{}

	svc := NewOrderService(tables, products, coupons, orders, broker, zap.NewNop().Sugar())
	svc.now = func() time.Time {
		return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	}

	return svc, tables, products, coupons, orders, broker
}

func cart() PlaceOrderInput {
	return PlaceOrderInput{
		TableName: "A1",
		Lines: []OrderLineInput{
			{ProductNo: "P1", Qty: 2, Note: "no onions"},
			{ProductNo: "P2", Qty: 1},
		},
	}
}

func TestPlaceOrder_PreviewPersistsNothing(t *testing.T) {
	svc, _, _, _, orders, broker := newOrderFixture()

	result, err := svc.PlaceOrder(context.Background(), cart(), ModePreview)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	projection := result.Projection
	if projection == nil {
		t.Fatal("expected a projection")
	}
	if result.Order != nil {
		t.Fatal("preview must not return a persisted order")
	}
	if projection.TotalPrice != 250 {
		t.Errorf("TotalPrice = %v, want 250", projection.TotalPrice)
	}
	if projection.TotalTime != 20 {
		t.Errorf("TotalTime = %v, want 20", projection.TotalTime)
	}
	if projection.TimeSlot != domain.SlotMorning {
		t.Errorf("TimeSlot = %v, want morning", projection.TimeSlot)
	}
	if projection.Table == nil || projection.Table.TableNo != "T000000001" {
		t.Errorf("table not populated: %+v", projection.Table)
	}

	if len(orders.orders) != 0 || len(orders.details) != 0 {
		t.Error("preview persisted documents")
	}
	if len(broker.published) != 0 {
		t.Error("preview published an event")
	}
}

func TestPlaceOrder_Commit(t *testing.T) {
	svc, _, _, _, orders, broker := newOrderFixture()

	result, err := svc.PlaceOrder(context.Background(), cart(), ModeCommit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := result.Order
	if order == nil {
		t.Fatal("expected a persisted order")
	}
	if order.OrderNo != "O000000001" {
		t.Errorf("OrderNo = %q, want O000000001", order.OrderNo)
	}
	if order.Status != domain.OrderUnpaid {
		t.Errorf("Status = %q, want unpaid", order.Status)
	}
	if order.Detail == nil {
		t.Fatal("detail not populated")
	}
	if order.Detail.Status != domain.DetailNotServed {
		t.Errorf("detail status = %q, want not-served", order.Detail.Status)
	}
	if order.OrderDetailID != order.Detail.ID {
		t.Error("order does not reference its detail")
	}
	if order.Detail.PayableAmount != 250 {
		t.Errorf("PayableAmount = %v, want 250", order.Detail.PayableAmount)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(orders.orders))
	}
	if len(orders.details) != 1 {
		t.Fatalf("persisted %d details, want 1", len(orders.details))
	}

	if len(broker.published) != 1 {
		t.Fatalf("published %d events, want 1", len(broker.published))
	}
	if broker.published[0].channel != queue.ChannelChef {
		t.Errorf("event channel = %q, want %q", broker.published[0].channel, queue.ChannelChef)
	}

	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(broker.published[0].payload, &event); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if event.OrderNo != order.OrderNo {
		t.Errorf("event order_no = %q, want %q", event.OrderNo, order.OrderNo)
	}
	if event.EventType != domain.EventOrderCreated {
		t.Errorf("event type = %q", event.EventType)
	}
	if event.EventID == "" {
		t.Error("event id is empty")
	}
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc, _, _, _, orders, broker := newOrderFixture()

	in := PlaceOrderInput{
		TableName: "A1",
		Lines: []OrderLineInput{
			{ProductNo: "P1", Qty: 11},
			{ProductNo: "P2", Qty: 21},
		},
	}

	_, err := svc.PlaceOrder(context.Background(), in, ModeCommit)
	if err == nil {
		t.Fatal("expected error, got none")
	}

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("error = %v, want InsufficientStockError", err)
	}
	if len(stockErr.Shortages) != 2 {
		t.Errorf("got %d shortages, want 2", len(stockErr.Shortages))
	}

	if len(orders.orders) != 0 || len(orders.details) != 0 {
		t.Error("a failed order left documents behind")
	}
	if len(broker.published) != 0 {
		t.Error("a failed order published an event")
	}
}

func TestPlaceOrder_UnknownTable(t *testing.T) {
	svc, _, _, _, orders, _ := newOrderFixture()

	in := cart()
	in.TableName = "missing"

	_, err := svc.PlaceOrder(context.Background(), in, ModeCommit)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if len(orders.orders) != 0 {
		t.Error("a failed order left documents behind")
	}
}

func TestPlaceOrder_NoProductsResolve(t *testing.T) {
	svc, _, _, _, _, _ := newOrderFixture()

	in := PlaceOrderInput{
		TableName: "A1",
		Lines:     []OrderLineInput{{ProductNo: "GHOST", Qty: 1}},
	}

	_, err := svc.PlaceOrder(context.Background(), in, ModePreview)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPlaceOrder_PartialResolutionProceeds(t *testing.T) {
	svc, _, _, _, _, _ := newOrderFixture()

	in := PlaceOrderInput{
		TableName: "A1",
		Lines: []OrderLineInput{
			{ProductNo: "P1", Qty: 1},
			{ProductNo: "GHOST", Qty: 1},
		},
	}

	result, err := svc.PlaceOrder(context.Background(), in, ModePreview)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Projection.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(result.Projection.Lines))
	}
	if result.Projection.Lines[0].ProductNo != "P1" {
		t.Errorf("resolved line = %q, want P1", result.Projection.Lines[0].ProductNo)
	}
}

func TestPlaceOrder_FlatCoupon(t *testing.T) {
	svc, _, _, _, _, _ := newOrderFixture()

	in := cart()
	in.CouponCode = "TENOFF"

	result, err := svc.PlaceOrder(context.Background(), in, ModePreview)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	projection := result.Projection
	if projection.TotalPrice != 250 {
		t.Errorf("TotalPrice = %v, want 250", projection.TotalPrice)
	}
	if projection.PayableAmount != 225 {
		t.Errorf("PayableAmount = %v, want 225", projection.PayableAmount)
	}
	if projection.CouponNo != "CP000000001" {
		t.Errorf("CouponNo = %q, want CP000000001", projection.CouponNo)
	}
}

func TestPlaceOrder_ComboCoupon(t *testing.T) {
	svc, _, _, _, _, _ := newOrderFixture()

	in := cart()
	in.CouponCode = "COMBO"

	result, err := svc.PlaceOrder(context.Background(), in, ModePreview)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mains (category A) stay at 200, drinks (category B) drop to 10%
	// of 50
	if result.Projection.PayableAmount != 205 {
		t.Errorf("PayableAmount = %v, want 205", result.Projection.PayableAmount)
	}
}

func TestPlaceOrder_UnknownCoupon(t *testing.T) {
	svc, _, _, _, _, _ := newOrderFixture()

	in := cart()
	in.CouponCode = "NOPE"

	_, err := svc.PlaceOrder(context.Background(), in, ModePreview)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPlaceOrder_SnapshotImmutability(t *testing.T) {
	svc, _, products, _, orders, _ := newOrderFixture()

	result, err := svc.PlaceOrder(context.Background(), cart(), ModeCommit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// raise the catalog price after the order exists
	p := products.products["P1"]
	p.Price = 150
	products.products["P1"] = p

	detail, err := orders.GetDetail(context.Background(), result.Order.OrderDetailID)
	if err != nil {
		t.Fatalf("failed to re-read detail: %v", err)
	}

	for _, l := range detail.Lines {
		if l.ProductNo == "P1" && l.Price != 100 {
			t.Errorf("persisted line price = %v, catalog edit leaked into the snapshot", l.Price)
		}
	}
}

func TestPlaceOrder_RetriesOrderNoCollision(t *testing.T) {
	svc, _, _, _, orders, _ := newOrderFixture()
	orders.conflictOnce = true

	result, err := svc.PlaceOrder(context.Background(), cart(), ModeCommit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// first allocation collided, the retry took the next number
	if result.Order.OrderNo != "O000000002" {
		t.Errorf("OrderNo = %q, want O000000002", result.Order.OrderNo)
	}
	if len(orders.orders) != 1 {
		t.Errorf("persisted %d orders, want 1", len(orders.orders))
	}
}
