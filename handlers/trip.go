// File: handlers/trip.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	tripRepo "shuttle/database/repository/trip"
	"shuttle/middleware"
	tripSvc "shuttle/services/trip"
	"shuttle/utils"
)

// StartTripHandler begins the authenticated driver's outbound leg.
func (hb *HandlerBundle) StartTripHandler(c *gin.Context) {
	trip, err := hb.Trips.StartTrip(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		switch {
		case errors.Is(err, tripSvc.ErrNoDutyWindow):
			c.JSON(http.StatusConflict, gin.H{"error": "no duty window covers the current time"})
		case errors.Is(err, tripSvc.ErrNoBookingsAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "no confirmed bookings to carry"})
		case errors.Is(err, tripSvc.ErrTripAlreadyActive):
			c.JSON(http.StatusConflict, gin.H{"error": "driver already has an active trip"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to start trip", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// BeginReturnHandler flips an active trip to its return leg.
func (hb *HandlerBundle) BeginReturnHandler(c *gin.Context) {
	trip, err := hb.Trips.BeginReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, tripRepo.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		case errors.Is(err, tripSvc.ErrTripNotActive), errors.Is(err, tripRepo.ErrIllegalPhaseTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "trip is not on its outbound leg"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to begin return leg", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, trip)
}

// EndTripHandler completes an active trip and settles its bookings.
func (hb *HandlerBundle) EndTripHandler(c *gin.Context) {
	trip, err := hb.Trips.EndTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, tripRepo.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		case errors.Is(err, tripSvc.ErrTripNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "trip is not active"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to end trip", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, trip)
}

// CurrentTripHandler returns the driver's active trip, if any.
func (hb *HandlerBundle) CurrentTripHandler(c *gin.Context) {
	trip, err := hb.Trips.CurrentTrip(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		if errors.Is(err, tripRepo.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active trip"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch trip", err.Error())
		return
	}
	c.JSON(http.StatusOK, trip)
}

// TripBookingsHandler returns the bookings claimed into a trip, the
// driver's passenger manifest.
func (hb *HandlerBundle) TripBookingsHandler(c *gin.Context) {
	bookings, err := hb.Trips.TripBookings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, tripRepo.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to list trip bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
