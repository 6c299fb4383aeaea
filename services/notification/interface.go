// File: services/notification/interface.go
package notification

import (
	"context"

	"shuttle/models"
)

// Dispatcher is the engine's outward notification surface. Every call
// is fire-and-forget: implementations log failures and never return
// them, so a push that cannot be delivered never rolls back or blocks
// the state transition that triggered it.
type Dispatcher interface {
	BookingConfirmed(ctx context.Context, booking *models.Booking)
	BookingCancelled(ctx context.Context, booking *models.Booking, reason string)
	TripStarted(ctx context.Context, trip *models.Trip, claimed int)
	TripReturnStarted(ctx context.Context, trip *models.Trip)
	TripCompleted(ctx context.Context, trip *models.Trip)
	// BookingMissed tells a guest their claimed but never-verified
	// booking ended with no ride when the trip completed.
	BookingMissed(ctx context.Context, booking *models.Booking)
}

// Sender delivers one push to one device. Implemented over FCM; the
// queue worker is its only caller.
type Sender interface {
	Send(ctx context.Context, payload models.PushPayload) error
}
