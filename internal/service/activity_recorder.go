package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/apexautomovers/quote-service/internal/events"
)

// LifecycleMetrics counts dispatched quote events.
type LifecycleMetrics interface {
	RecordLifecycleEvent(eventType string)
}

// ActivityRecorder writes an audit log line and a metric for every quote event.
type ActivityRecorder struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    LifecycleMetrics
}

// NewActivityRecorder creates the recorder.
func NewActivityRecorder(dispatcher events.Dispatcher, logger *zap.Logger, metrics LifecycleMetrics) *ActivityRecorder {
	return &ActivityRecorder{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (r *ActivityRecorder) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	r.dispatcher.Subscribe(events.EventQuoteSubmitted, r.record)
	r.dispatcher.Subscribe(events.EventQuoteStatusChanged, r.record)
	r.dispatcher.Subscribe(events.EventQuoteUpdated, r.record)
	r.dispatcher.Subscribe(events.EventQuoteSent, r.record)
}

func (r *ActivityRecorder) record(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("quote_id", event.QuoteID),
		zap.Bool("admin", event.Actor.Admin),
		zap.Any("payload", event.Payload),
	}
	if event.Actor.UserID != nil {
		fields = append(fields, zap.String("user_id", *event.Actor.UserID))
	}
	r.logger.Info("quote activity", fields...)
	if r.metrics != nil {
		r.metrics.RecordLifecycleEvent(string(event.Type))
	}
	return nil
}
