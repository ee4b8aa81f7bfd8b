package usecase

import (
	"context"

	"salon-booking/internal/data/entity"

	"go.uber.org/zap"
)

// Notifier publishes booking lifecycle events. Delivery (push, email,
// SMS) is an external collaborator; this backend only emits the events.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *entity.Booking)
	BookingCancelled(ctx context.Context, booking *entity.Booking)
	BookingRescheduled(ctx context.Context, old, replacement *entity.Booking)
}

type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log.With(zap.String("service", "notifier"))}
}

func (n *logNotifier) BookingCreated(ctx context.Context, booking *entity.Booking) {
	n.log.Info("booking.created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.Time("start", booking.StartTime),
		zap.Int64("price", booking.Price),
	)
}

func (n *logNotifier) BookingCancelled(ctx context.Context, booking *entity.Booking) {
	n.log.Info("booking.cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
	)
}

func (n *logNotifier) BookingRescheduled(ctx context.Context, old, replacement *entity.Booking) {
	n.log.Info("booking.rescheduled",
		zap.String("booking_id", old.ID.String()),
		zap.String("new_booking_id", replacement.ID.String()),
		zap.Time("new_start", replacement.StartTime),
	)
}
