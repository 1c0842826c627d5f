package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/domain"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/queue"
	"go.uber.org/zap"
)

// KitchenDisplayWorker consumes the chef channel the way a kitchen
// display client would. It holds its own broker connection so the API's
// published events are not suppressed as loop-back.
type KitchenDisplayWorker struct {
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewKitchenDisplayWorker(broker queue.Broker, logger *zap.SugaredLogger) *KitchenDisplayWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &KitchenDisplayWorker{
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *KitchenDisplayWorker) Start() error {
	w.logger.Info("starting kitchen display worker")

	return w.broker.Subscribe(w.ctx, queue.ChannelChef, w.handleMessage)
}

func (w *KitchenDisplayWorker) Stop() {
	w.logger.Info("stopping kitchen display worker")
	w.cancel()
}

func (w *KitchenDisplayWorker) handleMessage(ctx context.Context, payload []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.Errorw("failed to unmarshal order event", "error", err)
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	w.logger.Infow("order received on kitchen display",
		"order_no", event.OrderNo,
		"table_name", event.TableName,
		"lines", len(event.Lines),
		"total_time", event.TotalTime,
	)

	return nil
}
