// File: handlers/checkin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "shuttle/database/repository/booking"
	checkinSvc "shuttle/services/checkin"
	"shuttle/utils"
)

// IssueCheckInHandler issues a one-time boarding code for a confirmed
// booking. Staff hand the code to the guest at the desk.
func (hb *HandlerBundle) IssueCheckInHandler(c *gin.Context) {
	code, err := hb.CheckIn.Issue(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, checkinSvc.ErrNotConfirmed):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is not confirmed"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to issue check-in code", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

// RedeemCheckInHandler burns a boarding code at the vehicle door and
// marks the booking verified.
func (hb *HandlerBundle) RedeemCheckInHandler(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.CheckIn.Redeem(c.Request.Context(), c.Param("id"), input.Code); err != nil {
		switch {
		case errors.Is(err, checkinSvc.ErrCodeExpired):
			c.JSON(http.StatusGone, gin.H{"error": "check-in code expired or already used"})
		case errors.Is(err, checkinSvc.ErrCodeMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "check-in code does not match"})
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to redeem check-in code", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}
