// File: services/trip/overlap.go
package trip

import (
	"context"

	"go.uber.org/zap"

	"shuttle/models"
	"shuttle/utils"
)

// CleanupOverlaps heals the one-active-trip-per-driver invariant after a
// crash or double-start left duplicates behind. The newest ACTIVE trip
// survives; every older one is force-completed, its verified bookings
// are settled, its unverified bookings are detached back into the claim
// pool, and its vehicle's ledger is reset in both directions. Returns
// the number of trips healed.
func (s *DefaultTripService) CleanupOverlaps(ctx context.Context, driverID string) (int, error) {
	logger := utils.GetLogger()

	active, err := s.Trips.ListActiveByDriver(ctx, driverID)
	if err != nil {
		return 0, err
	}
	if len(active) <= 1 {
		return 0, nil
	}

	now := s.clock()
	healed := 0
	for i := 1; i < len(active); i++ {
		stale := active[i]

		if err := s.Vehicles.ResetDirections(ctx, stale.VehicleID, models.Directions...); err != nil {
			logger.Error("overlap cleanup: ledger reset failed",
				zap.String("tripId", stale.ID),
				zap.String("vehicleId", stale.VehicleID),
				zap.Error(err))
			return healed, err
		}
		if err := s.Trips.Complete(ctx, stale.ID, now); err != nil {
			return healed, err
		}
		if _, err := s.Bookings.MarkCompletedVerified(ctx, stale.ID); err != nil {
			return healed, err
		}
		detached, err := s.Bookings.DetachUnverified(ctx, stale.ID)
		if err != nil {
			return healed, err
		}

		logger.Warn("overlap cleanup: force-completed stale trip",
			zap.String("driverId", driverID),
			zap.String("tripId", stale.ID),
			zap.Int64("detachedBookings", detached))
		healed++
	}
	return healed, nil
}
