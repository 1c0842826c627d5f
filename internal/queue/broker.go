package queue

import (
	"context"
)

// Broker is the real-time notification transport. Delivery is
// at-most-once and fire-and-forget: no acknowledgment, no retry, no
// persistence. A message published with no connected subscriber is
// silently dropped. Subscribers never receive messages of their own
// origin.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, payload []byte) error

// The kitchen and front-of-house displays are logically distinct
// topics on the same transport.
const (
	ChannelChef      = "chef"
	ChannelFrontDesk = "front-of-house"
)
