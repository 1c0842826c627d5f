package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/metrics"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/queue"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/repo"
	"go.uber.org/zap"
)

// OrderMode makes the preview/commit branch an explicit part of the
// contract instead of being inferred from the request path.
type OrderMode int

const (
	ModePreview OrderMode = iota
	ModeCommit
)

// allocation retries on a duplicate order number before giving up
const maxOrderNoAttempts = 3

type OrderLineInput struct {
	ProductNo string
	Qty       int
	Note      string
}

type PlaceOrderInput struct {
	TableName  string
	Lines      []OrderLineInput
	CouponCode string
}

// PlacedOrder carries the priced projection for previews and, for
// commits, the persisted order with table and detail populated.
type PlacedOrder struct {
	Projection *domain.OrderProjection
	Order      *domain.ComposedOrder
}

type OrderService struct {
	tableRepo   repo.TableRepository
	productRepo repo.ProductRepository
	couponRepo  repo.CouponRepository
	orderRepo   repo.OrderRepository
	broker      queue.Broker
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewOrderService(
	tableRepo repo.TableRepository,
	productRepo repo.ProductRepository,
	couponRepo repo.CouponRepository,
	orderRepo repo.OrderRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		tableRepo:   tableRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		orderRepo:   orderRepo,
		broker:      broker,
		logger:      logger,
		now:         time.Now,
	}
}

// PlaceOrder resolves, stock-checks and prices a cart, then either
// returns the projection (preview) or persists and broadcasts the
// order (commit). Any failure before persistence writes nothing.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput, mode OrderMode) (*PlacedOrder, error) {
	projection, detail, table, err := s.price(ctx, in)
	if err != nil {
		metrics.OrderFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	if mode == ModePreview {
		return &PlacedOrder{Projection: projection}, nil
	}

	composed, err := s.commit(ctx, projection, detail, table)
	if err != nil {
		metrics.OrderFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.publishOrderCreated(ctx, composed)

	return &PlacedOrder{Projection: projection, Order: composed}, nil
}

// price is the single pricing path shared by preview and commit.
func (s *OrderService) price(ctx context.Context, in PlaceOrderInput) (*domain.OrderProjection, *domain.OrderDetail, *domain.Table, error) {
	table, err := s.tableRepo.GetByName(ctx, in.TableName)
	if err != nil {
		return nil, nil, nil, err
	}

	productNos := make([]string, 0, len(in.Lines))
	for _, line := range in.Lines {
		productNos = append(productNos, line.ProductNo)
	}

	products, err := s.productRepo.GetByProductNos(ctx, productNos)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	if len(products) == 0 {
		return nil, nil, nil, fmt.Errorf("none of the requested products exist: %w", domain.ErrNotFound)
	}

	byNo := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byNo[p.ProductNo] = p
	}

	lines := make([]domain.OrderLine, 0, len(in.Lines))
	for _, req := range in.Lines {
		product, ok := byNo[req.ProductNo]
		if !ok {
			continue
		}
		lines = append(lines, buildLine(product, req.Qty, req.Note))
	}

	if err := CheckStock(lines, byNo); err != nil {
		return nil, nil, nil, err
	}

	var discount *Discount
	if in.CouponCode != "" {
		coupon, err := s.couponRepo.GetByCode(ctx, in.CouponCode)
		if err != nil {
			return nil, nil, nil, err
		}
		discount = &Discount{
			Kind:      coupon.Kind,
			Percent:   coupon.DiscountPercent,
			CategoryA: coupon.CategoryA,
			CategoryB: coupon.CategoryB,
			CouponNo:  coupon.CouponNo,
		}
	}

	pricing, err := PriceLines(lines, discount)
	if err != nil {
		return nil, nil, nil, err
	}

	projection := &domain.OrderProjection{
		Table:           table,
		TimeSlot:        domain.SlotFromTime(s.now()),
		Lines:           lines,
		TotalTime:       pricing.TotalTime,
		TotalPrice:      pricing.TotalPrice,
		DiscountPercent: pricing.DiscountPercent,
		PayableAmount:   pricing.PayableAmount,
	}
	if discount != nil {
		projection.CouponNo = discount.CouponNo
	}

	detail := &domain.OrderDetail{
		Lines:           lines,
		TotalTime:       pricing.TotalTime,
		TotalPrice:      pricing.TotalPrice,
		DiscountPercent: pricing.DiscountPercent,
		PayableAmount:   pricing.PayableAmount,
		CouponNo:        projection.CouponNo,
		Status:          domain.DetailNotServed,
	}

	return projection, detail, table, nil
}

func (s *OrderService) commit(ctx context.Context, projection *domain.OrderProjection, detail *domain.OrderDetail, table *domain.Table) (*domain.ComposedOrder, error) {
	var orderNo string

	for attempt := 1; ; attempt++ {
		no, err := s.orderRepo.NextOrderNo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate order number: %w", err)
		}

		order := &domain.Order{
			OrderNo:  no,
			Status:   domain.OrderUnpaid,
			TimeSlot: projection.TimeSlot,
			TableNo:  table.TableNo,
		}

		err = s.orderRepo.CreateWithDetail(ctx, order, detail)
		if err == nil {
			orderNo = no
			break
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxOrderNoAttempts {
			s.logger.Warnw("order number collision, retrying", "order_no", no, "attempt", attempt)
			continue
		}
		return nil, err
	}

	order, err := s.orderRepo.GetByNo(ctx, orderNo)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read order: %w", err)
	}

	persisted, err := s.orderRepo.GetDetail(ctx, order.OrderDetailID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read order detail: %w", err)
	}

	s.logger.Infow("order created", "order_no", order.OrderNo, "table_no", order.TableNo, "payable", persisted.PayableAmount)

	return &domain.ComposedOrder{
		Order:  *order,
		Table:  table,
		Detail: persisted,
	}, nil
}

// publishOrderCreated is fire-and-forget: the order already exists, a
// display that misses the event catches up by reading.
func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.ComposedOrder) {
	event := domain.OrderCreatedEvent{
		EventID:       uuid.NewString(),
		EventType:     domain.EventOrderCreated,
		OrderNo:       order.OrderNo,
		TableNo:       order.TableNo,
		TableName:     order.Table.TableName,
		TimeSlot:      order.TimeSlot,
		Lines:         order.Detail.Lines,
		TotalTime:     order.Detail.TotalTime,
		PayableAmount: order.Detail.PayableAmount,
		CreatedAt:     order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "order_no", order.OrderNo, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.ChannelChef, payload); err != nil {
		s.logger.Errorw("failed to publish order event", "order_no", order.OrderNo, "error", err)
	}
}

func failureReason(err error) string {
	var stockErr *domain.InsufficientStockError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
