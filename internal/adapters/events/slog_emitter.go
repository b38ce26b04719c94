package events

import (
	"context"

	portssvc "github.com/magedShawky1972/transfigure-admin-sub004/internal/core/ports/services"
	"github.com/magedShawky1972/transfigure-admin-sub004/internal/middleware"
)

// slogEmitter publishes lifecycle events to the structured log. Downstream
// consumers tail the log stream; delivery is at-least-once and consumers
// dedupe on entry id plus status.
type slogEmitter struct{}

// NewSlogEmitter creates an event emitter backed by the request logger.
func NewSlogEmitter() portssvc.EventEmitter {
	return &slogEmitter{}
}

var _ portssvc.EventEmitter = (*slogEmitter)(nil)

func (e *slogEmitter) Emit(ctx context.Context, eventType portssvc.EventType, payload map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	attrs := make([]any, 0, 2+2*len(payload))
	attrs = append(attrs, "event", string(eventType))
	for k, v := range payload {
		attrs = append(attrs, k, v)
	}
	logger.Info("Lifecycle event", attrs...)
}
