package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-api/config"
	"github.com/ikkim/marketplace-api/internal/app/controller"
	"github.com/ikkim/marketplace-api/internal/middleware"
)

type Router struct {
	productController *controller.ProductController
	storeController   *controller.StoreController
	tagController     *controller.TagController
	exportController  *controller.ExportController
	config            *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	storeController *controller.StoreController,
	tagController *controller.TagController,
	exportController *controller.ExportController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController: productController,
		storeController:   storeController,
		tagController:     tagController,
		exportController:  exportController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Catalog API is running",
		})
	})

	router.GET("/export.xlsx", r.exportController.ExportCatalog)

	products := router.Group("/ProductItems")
	{
		products.GET("", r.productController.ListProducts)
		products.POST("", r.productController.CreateProduct)
		products.GET("/:id", r.productController.GetProduct)
		products.PUT("/:id", r.productController.UpdateProduct)
		products.DELETE("/:id", r.productController.DeleteProduct)

		products.GET("/:id/stores", r.productController.ListStores)
		products.GET("/:id/tags", r.productController.ListTags)
		products.PUT("/:id/AddStore/:storeId", r.productController.AddStore)
		products.PUT("/:id/AddTag/:tagId", r.productController.AddTag)
		products.DELETE("/:id/RemoveStore/:storeId", r.productController.RemoveStore)
		products.DELETE("/:id/RemoveTag/:tagId", r.productController.RemoveTag)
	}

	stores := router.Group("/StoreItems")
	{
		stores.GET("", r.storeController.ListStores)
		stores.POST("", r.storeController.CreateStore)
		stores.GET("/:id", r.storeController.GetStore)
		stores.PUT("/:id", r.storeController.UpdateStore)
		stores.DELETE("/:id", r.storeController.DeleteStore)

		stores.GET("/:id/products", r.storeController.ListProducts)
		stores.PUT("/:id/AddProduct/:productId", r.storeController.AddProduct)
		stores.DELETE("/:id/RemoveProduct/:productId", r.storeController.RemoveProduct)
	}

	tags := router.Group("/TagItems")
	{
		tags.GET("", r.tagController.ListTags)
		tags.POST("", r.tagController.CreateTag)
		tags.GET("/:id", r.tagController.GetTag)
		tags.PUT("/:id", r.tagController.UpdateTag)
		tags.DELETE("/:id", r.tagController.DeleteTag)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Location, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
