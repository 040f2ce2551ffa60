package workers

import (
	"context"
	"log/slog"
	"time"

	"opsroom/contract"
)

// DeliveryFanout drains the router's delivery channel and pushes each
// event to the live sinks resolved at delivery time.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries; it is not a message broker. Within one room,
// events reach already-joined sessions in emission order because a single
// worker drains the channel.
type DeliveryFanout struct {
	Log         *slog.Logger
	Deliveries  <-chan contract.Delivery
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewDeliveryFanout(log *slog.Logger, registry contract.IRegistry,
	deliveries <-chan contract.Delivery, sinkTimeout time.Duration) *DeliveryFanout {
	return &DeliveryFanout{
		Log:         log,
		Deliveries:  deliveries,
		registry:    registry,
		sinkTimeout: sinkTimeout,
	}
}

func (w *DeliveryFanout) Run(ctx context.Context) error {
	for {
		select {
		case delivery := <-w.Deliveries:
			w.fanout(ctx, delivery)
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping delivery fan-out")
			return nil
		}
	}
}

func (w *DeliveryFanout) fanout(ctx context.Context, delivery contract.Delivery) {
	var sinks []contract.EventSink
	switch {
	case delivery.UserID != "":
		sink, ok := w.registry.SinkForUser(delivery.UserID)
		if !ok {
			// Offline user: the durable notification row covers it.
			return
		}
		sinks = []contract.EventSink{sink}
	default:
		sinks = w.registry.SinksForRoom(delivery.Room, delivery.Exclude)
	}

	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, delivery.Event); err != nil {
			w.Log.Warn("sink rejected event",
				"event", delivery.Event.EventName(), "error", err)
		}
		cancel()
	}
}
