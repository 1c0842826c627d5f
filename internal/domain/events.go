package domain

import "time"

// OrderCreatedEvent is pushed to the chef channel when an order is
// committed. Delivery is at-most-once; a display that is offline simply
// misses the event.
type OrderCreatedEvent struct {
	EventID       string      `json:"event_id"`
	EventType     string      `json:"event_type"`
	OrderNo       string      `json:"order_no"`
	TableNo       string      `json:"table_no"`
	TableName     string      `json:"table_name"`
	TimeSlot      TimeSlot    `json:"time_slot"`
	Lines         []OrderLine `json:"lines"`
	TotalTime     int         `json:"total_time"`
	PayableAmount float64     `json:"payable_amount"`
	CreatedAt     time.Time   `json:"created_at"`
}

const (
	EventOrderCreated = "order.created"
)
