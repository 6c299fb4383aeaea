// File: services/notification/queue.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"shuttle/models"
	"shuttle/utils"
)

// TypePushSend is the asynq task type for outbound pushes.
const TypePushSend = "notify:push"

// QueueDispatcher implements Dispatcher by enqueueing push tasks on the
// asynq queue. Enqueue failures are logged and swallowed.
type QueueDispatcher struct {
	Client *asynq.Client
}

func NewQueueDispatcher(client *asynq.Client) *QueueDispatcher {
	return &QueueDispatcher{Client: client}
}

func (d *QueueDispatcher) BookingConfirmed(ctx context.Context, booking *models.Booking) {
	d.enqueue(ctx, models.PushPayload{
		Target: "guest",
		ID:     booking.GuestID,
		Title:  "Shuttle seat confirmed",
		Body:   fmt.Sprintf("Your %d seat(s) for %s are confirmed.", booking.Persons, booking.TripDate),
		Data:   map[string]string{"bookingId": booking.ID},
	})
}

func (d *QueueDispatcher) BookingCancelled(ctx context.Context, booking *models.Booking, reason string) {
	d.enqueue(ctx, models.PushPayload{
		Target: "guest",
		ID:     booking.GuestID,
		Title:  "Shuttle booking cancelled",
		Body:   reason,
		Data:   map[string]string{"bookingId": booking.ID},
	})
}

func (d *QueueDispatcher) TripStarted(ctx context.Context, trip *models.Trip, claimed int) {
	d.enqueue(ctx, models.PushPayload{
		Target: "driver",
		ID:     trip.DriverID,
		Title:  "Trip started",
		Body:   fmt.Sprintf("Outbound leg started with %d booking(s).", claimed),
		Data:   map[string]string{"tripId": trip.ID},
	})
}

func (d *QueueDispatcher) TripReturnStarted(ctx context.Context, trip *models.Trip) {
	d.enqueue(ctx, models.PushPayload{
		Target: "driver",
		ID:     trip.DriverID,
		Title:  "Return leg started",
		Data:   map[string]string{"tripId": trip.ID},
	})
}

func (d *QueueDispatcher) TripCompleted(ctx context.Context, trip *models.Trip) {
	d.enqueue(ctx, models.PushPayload{
		Target: "driver",
		ID:     trip.DriverID,
		Title:  "Trip completed",
		Data:   map[string]string{"tripId": trip.ID},
	})
}

func (d *QueueDispatcher) BookingMissed(ctx context.Context, booking *models.Booking) {
	d.enqueue(ctx, models.PushPayload{
		Target: "guest",
		ID:     booking.GuestID,
		Title:  "Shuttle departed",
		Body:   "The shuttle completed its trip without your check-in; your booking was not carried.",
		Data:   map[string]string{"bookingId": booking.ID},
	})
}

func (d *QueueDispatcher) enqueue(ctx context.Context, payload models.PushPayload) {
	logger := utils.GetLogger()
	if d.Client == nil {
		logger.Warn("notification queue not configured; dropping push",
			zap.String("target", payload.Target), zap.String("id", payload.ID))
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal push payload", zap.Error(err))
		return
	}
	if _, err := d.Client.EnqueueContext(ctx, asynq.NewTask(TypePushSend, raw)); err != nil {
		logger.Error("failed to enqueue push",
			zap.String("target", payload.Target), zap.String("id", payload.ID), zap.Error(err))
	}
}
