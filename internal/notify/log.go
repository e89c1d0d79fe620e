package notify

import (
	"context"

	"herbanusa-be/internal/logger"

	"go.uber.org/zap"
)

type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, ev Event) error {
	logger.FromCtx(ctx).Info("notification",
		zap.String("event_id", ev.ID),
		zap.String("kind", string(ev.Kind)),
		zap.String("audience", ev.Audience),
		zap.String("order_id", ev.OrderID),
		zap.String("status", ev.Status),
		zap.String("message", ev.Message),
	)
	return nil
}
