package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ageVerifyRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ageVerifyHandler records the visitor's age confirmation in a cookie that
// expires after a day, so the gate reappears on the next visit.
func ageVerifyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ageVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil || !req.Confirmed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
			return
		}
		setAgeCookie(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func ageVerifyStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"verified": ageVerified(c)})
	}
}
