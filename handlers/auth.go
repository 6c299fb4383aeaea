// File: handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shuttle/config"
	userRepo "shuttle/database/repository/user"
	"shuttle/middleware"
	"shuttle/models"
	"shuttle/utils"
)

const tokenLifetime = 12 * time.Hour

// TokenHandler exchanges a principal ID for a signed session token.
// Guests and drivers must exist; staff present the hotel's access code.
func (hb *HandlerBundle) TokenHandler(c *gin.Context) {
	var input struct {
		ID         string `json:"id" binding:"required"`
		Role       string `json:"role" binding:"required"`
		AccessCode string `json:"accessCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	switch input.Role {
	case models.RoleGuest:
		if _, err := hb.Users.GetGuestByID(ctx, input.ID); err != nil {
			unauthorizedOrFail(c, err)
			return
		}
	case models.RoleDriver:
		if _, err := hb.Users.GetDriverByID(ctx, input.ID); err != nil {
			unauthorizedOrFail(c, err)
			return
		}
	case models.RoleStaff:
		if config.AppConfig.StaffAccessCode == "" || input.AccessCode != config.AppConfig.StaffAccessCode {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access code"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	token, err := utils.GenerateToken(input.ID, input.Role, tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to sign token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(tokenLifetime.Seconds())})
}

// RegisterDeviceTokenHandler stores the caller's FCM device token so
// pushes can reach them.
func (hb *HandlerBundle) RegisterDeviceTokenHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := middleware.PrincipalID(c)
	role, _ := c.Get(middleware.CtxRole)

	var err error
	switch role {
	case models.RoleGuest:
		err = hb.Users.UpdateGuestFCMToken(ctx, id, input.FCMToken)
	case models.RoleDriver:
		err = hb.Users.UpdateDriverFCMToken(ctx, id, input.FCMToken)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "staff sessions carry no device token"})
		return
	}
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to register device token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

func unauthorizedOrFail(c *gin.Context, err error) {
	if errors.Is(err, userRepo.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "failed to resolve account", err.Error())
}
