package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"notify-center-api/controllers"
	"notify-center-api/middleware"
)

func SetupRoutes(router *gin.Engine, trigger *controllers.TriggerController, notifier *controllers.NotifierController) {
	// Trigger webhook, called by the source-control server. Anonymous but
	// rate limited per client.
	router.POST("/Trigger/Fire/:type", middleware.RateLimitMiddleware(rate.Limit(10), 20), trigger.Fire)

	// Trigger diagnostics, for the admin console.
	router.GET("/Trigger/Vars/:type", middleware.AuthMiddleware(), trigger.Vars)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"status":  "ok",
					"message": "Notify Center API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/stats", controllers.GetStats)
			protected.GET("/history", controllers.GetHistory)
			protected.GET("/triggers", controllers.GetTriggers)

			notifierGroup := protected.Group("/notifiers")
			{
				notifierGroup.GET("/types", notifier.GetTypes)
				notifierGroup.POST("/test", notifier.TestSMTP)
			}
		}
	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}
