// File: handlers/bundle.go
package handlers

import (
	scheduleRepoPkg "shuttle/database/repository/schedule"
	userRepoPkg "shuttle/database/repository/user"
	vehicleRepoPkg "shuttle/database/repository/vehicle"
	bookingSvc "shuttle/services/booking"
	checkinSvc "shuttle/services/checkin"
	tripSvc "shuttle/services/trip"
)

// HandlerBundle groups all endpoint handlers and the services they
// delegate to into one struct.
type HandlerBundle struct {
	Reservations bookingSvc.ReservationService
	Trips        tripSvc.TripService
	CheckIn      checkinSvc.CheckInService

	Users    userRepoPkg.UserRepository
	Vehicles vehicleRepoPkg.VehicleRepository
	Windows  scheduleRepoPkg.ScheduleRepository
}
