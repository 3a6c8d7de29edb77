package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartstate "storefront-backend/internal/cart"
	cartsvc "storefront-backend/internal/service/cart"
)

type addLineRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
}

type updateLineRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	UpdateType    string `json:"updateType" binding:"required"`
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), cartIDFromCookie(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartLineHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "merchandiseId is required"})
			return
		}

		cookieID := cartIDFromCookie(c)
		cartID, cart, err := svc.AddItem(c.Request.Context(), cookieID, req.MerchandiseID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if cartID != cookieID {
			setCartCookie(c, cartID)
		}
		c.JSON(http.StatusOK, cart)
	}
}

func updateCartLineHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "merchandiseId and updateType are required"})
			return
		}

		t := cartstate.UpdateType(req.UpdateType)
		switch t {
		case cartstate.UpdatePlus, cartstate.UpdateMinus, cartstate.UpdateDelete:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "updateType must be plus, minus or delete"})
			return
		}

		cart, err := svc.UpdateItem(c.Request.Context(), cartIDFromCookie(c), req.MerchandiseID, t)
		if err != nil {
			if errors.Is(err, cartsvc.ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// checkoutHandler hands the buyer off to the platform's checkout. Without a
// cart there is nothing to check out, reported as 204.
func checkoutHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := svc.CheckoutURL(c.Request.Context(), cartIDFromCookie(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if url == "" {
			c.Status(http.StatusNoContent)
			return
		}
		c.Redirect(http.StatusSeeOther, url)
	}
}
