// File: handlers/staff.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "shuttle/database/repository/booking"
	vehicleRepo "shuttle/database/repository/vehicle"
	bookingSvc "shuttle/services/booking"
	"shuttle/utils"
)

// ListUnassignedHandler returns the staff worklist: bookings the finder
// could not place on any vehicle.
func (hb *HandlerBundle) ListUnassignedHandler(c *gin.Context) {
	hotelID := c.Query("hotelId")
	if hotelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hotelId query parameter is required"})
		return
	}
	bookings, err := hb.Reservations.ListUnassigned(c.Request.Context(), hotelID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list unassigned bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AssignVehicleHandler holds seats for a booking on a staff-chosen
// vehicle, bypassing the finder.
func (hb *HandlerBundle) AssignVehicleHandler(c *gin.Context) {
	var input struct {
		VehicleID string `json:"vehicleId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := hb.Reservations.AssignVehicle(c.Request.Context(), c.Param("id"), input.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, vehicleRepo.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		case errors.Is(err, bookingSvc.ErrNoSeatsAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "vehicle has insufficient free seats"})
		case errors.Is(err, bookingSvc.ErrAlreadyReserved):
			c.JSON(http.StatusConflict, gin.H{"error": "booking already has a reservation"})
		case errors.Is(err, bookingSvc.ErrBookingCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is cancelled"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to assign vehicle", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// VerifyBookingHandler is the staff confirmation step: it promotes a
// held reservation to confirmed, locking the seats until the trip runs.
func (hb *HandlerBundle) VerifyBookingHandler(c *gin.Context) {
	booking, err := hb.Reservations.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, bookingSvc.ErrHoldExpired):
			c.JSON(http.StatusGone, gin.H{"error": "hold expired; ask the guest to rebook"})
		case errors.Is(err, bookingSvc.ErrNotHeld):
			c.JSON(http.StatusConflict, gin.H{"error": "booking holds no seats"})
		case errors.Is(err, bookingSvc.ErrBookingCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is cancelled"})
		case errors.Is(err, vehicleRepo.ErrInsufficientHeldSeats):
			c.JSON(http.StatusConflict, gin.H{"error": "held seats no longer present on the vehicle"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListVehiclesHandler returns the active vehicles of a hotel with their
// live seat counters, for the staff assignment screen.
func (hb *HandlerBundle) ListVehiclesHandler(c *gin.Context) {
	hotelID := c.Query("hotelId")
	if hotelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hotelId query parameter is required"})
		return
	}
	vehicles, err := hb.Vehicles.ListActiveByHotel(c.Request.Context(), hotelID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list vehicles", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}
