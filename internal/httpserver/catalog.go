package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domain"
	catalogsvc "storefront-backend/internal/service/catalog"
)

func listProductsHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Products(c.Request.Context(), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Product(c.Request.Context(), c.Param("handle"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func collectionProductsHandler(svc *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, err := svc.Collection(c.Request.Context(), c.Param("handle"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, collection)
	}
}
