// File: services/booking/finder.go
package booking

import (
	"context"
	"fmt"
	"time"

	scheduleRepo "shuttle/database/repository/schedule"
	"shuttle/models"
)

// FindVehicle locates a shuttle for the request: active vehicles of the
// hotel with at least one duty window on the requested day, first one
// (enumeration order, no load balancing) with enough free seats in the
// direction. A nil vehicle with nil error is the normal "no vehicle"
// outcome, not a failure: the booking stays unassigned for staff.
//
// The availability read here and the reserve increment in Hold are two
// separate operations; concurrent holds can both pass this check. See
// ReserveSeatsStrict for the closed variant.
func (s *DefaultReservationService) FindVehicle(ctx context.Context, hotelID string, dir models.Direction, persons int, tripDate string) (*models.Vehicle, error) {
	dayStart, dayEnd, err := scheduleRepo.DayBounds(tripDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid trip date %q: %w", tripDate, err)
	}

	vehicles, err := s.Vehicles.ListActiveByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	for i := range vehicles {
		v := &vehicles[i]
		windows, err := s.Windows.WindowsForVehicle(ctx, v.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if len(windows) == 0 {
			continue
		}
		if v.Availability(dir) >= persons {
			return v, nil
		}
	}
	return nil, nil
}
