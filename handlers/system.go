// File: handlers/system.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/utils"
)

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"health": utils.GetHealthStatus(),
	})
}
