package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/contact"
	contactsvc "storefront-backend/internal/service/contact"
	contentsvc "storefront-backend/internal/service/content"
)

func contactHandler(svc *contactsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireJSON(c) {
			return
		}
		var in contact.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := svc.ProcessContact(c.Request.Context(), c.ClientIP(), in); err != nil {
			writeSubmitError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func subscribeHandler(svc *contactsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireJSON(c) {
			return
		}
		var in contact.SubscribeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := svc.ProcessSubscribe(c.Request.Context(), c.ClientIP(), in); err != nil {
			writeSubmitError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "subscribed"})
	}
}

// headerHandler proxies merchant content. Upstream failures degrade to empty
// content so the storefront still renders.
func headerHandler(svc *contentsvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := svc.Header(c.Request.Context())
		if err != nil {
			logger.Printf("header content: %v", err)
			c.JSON(http.StatusOK, gin.H{"fields": gin.H{}})
			return
		}
		c.JSON(http.StatusOK, header)
	}
}

func requireJSON(c *gin.Context) bool {
	ct := c.GetHeader("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "expected application/json"})
		return false
	}
	return true
}

func writeSubmitError(c *gin.Context, err error) {
	var verr *contactsvc.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Fields})
	case errors.Is(err, contactsvc.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": contactsvc.ErrSubmit.Error()})
	}
}
