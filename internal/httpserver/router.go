package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "storefront-backend/internal/service/cart"
	catalogsvc "storefront-backend/internal/service/catalog"
	contactsvc "storefront-backend/internal/service/contact"
	contentsvc "storefront-backend/internal/service/content"
)

// Deps carries the services the router hands requests to.
type Deps struct {
	Cart           *cartsvc.Service
	Catalog        *catalogsvc.Service
	Contact        *contactsvc.Service
	Content        *contentsvc.Service
	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.POST("/contact", contactHandler(deps.Contact))
		api.POST("/subscribe", subscribeHandler(deps.Contact))
		api.GET("/header", headerHandler(deps.Content, logger))

		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart/lines", addCartLineHandler(deps.Cart))
		api.POST("/cart/lines/update", updateCartLineHandler(deps.Cart))
		api.POST("/checkout", checkoutHandler(deps.Cart))

		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:handle", getProductHandler(deps.Catalog))
		api.GET("/collections/:handle/products", collectionProductsHandler(deps.Catalog))

		api.POST("/age-verify", ageVerifyHandler())
		api.GET("/age-verify", ageVerifyStatusHandler())
	}

	return router, nil
}
