// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "shuttle/database/repository/booking"
	"shuttle/middleware"
	"shuttle/models"
	bookingSvc "shuttle/services/booking"
	"shuttle/utils"
)

// CreateBookingHandler records a seat request for the authenticated
// guest and immediately attempts a hold. A booking the finder cannot
// place comes back without a vehicle; staff assign one later.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var input struct {
		HotelID         string `json:"hotelId" binding:"required"`
		Persons         int    `json:"persons" binding:"required"`
		Direction       string `json:"direction" binding:"required"`
		TripDate        string `json:"tripDate" binding:"required"`
		PickupLocation  string `json:"pickupLocation"`
		DropoffLocation string `json:"dropoffLocation"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	dir, err := models.ParseDirection(input.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid direction", "details": err.Error()})
		return
	}

	booking, err := hb.Reservations.CreateBooking(c.Request.Context(), bookingSvc.CreateBookingCommand{
		GuestID:         middleware.PrincipalID(c),
		HotelID:         input.HotelID,
		Persons:         input.Persons,
		Direction:       dir,
		TripDate:        input.TripDate,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		Notes:           input.Notes,
	})
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler returns one booking. Guests can only read their own.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	booking, err := hb.Reservations.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	if role, _ := c.Get(middleware.CtxRole); role == models.RoleGuest && booking.GuestID != middleware.PrincipalID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookingsHandler returns the authenticated guest's bookings.
func (hb *HandlerBundle) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := hb.Reservations.ListGuestBookings(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler cancels a booking, releasing held seats.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	id := c.Param("id")

	if role, _ := c.Get(middleware.CtxRole); role == models.RoleGuest {
		booking, err := hb.Reservations.GetBooking(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
			return
		}
		if booking.GuestID != middleware.PrincipalID(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
			return
		}
	}

	if err := hb.Reservations.Cancel(c.Request.Context(), id, "Booking cancelled on request."); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
