package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware, dispatchMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.POST("/auth/login", handler.login)

	// Order screens are restricted to dispatcher and administrator roles,
	// mirroring the access rule of the admin console.
	protected := api.Group("/console")
	protected.Use(authMiddleware, dispatchMiddleware)
	{
		protected.GET("/orders/active", handler.activeOrders)
		protected.GET("/orders/archive", handler.archiveOrders)
		protected.POST("/orders/:id/cancel", handler.cancelOrder)
		protected.POST("/orders/:id/assign", handler.assignDriver)
		protected.POST("/orders/:id/select", handler.selectOrder)
		protected.DELETE("/selection", handler.clearSelection)
		protected.GET("/map", handler.mapView)
		protected.GET("/drivers/online", handler.onlineDrivers)
	}

	return router
}
