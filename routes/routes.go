package routes

import (
	"net/http"
	"time"

	"servimart/handlers"
	"servimart/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.GET("/customer/:customerId", hb.GetBookingsByCustomerHandler)
		api.GET("/service/:serviceId", hb.GetBookingsByServiceHandler)
		api.GET("/provider/:providerId", hb.GetBookingsByProviderHandler)
		api.PUT("/:id/status", hb.UpdateBookingStatusHandler)
		api.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterLoyaltyRoutes sets up the loyalty progress endpoints.
func RegisterLoyaltyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/loyalty")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/progress/:customerId/:providerId", hb.GetLoyaltyProgressHandler)
		api.GET("/progress/customer/:customerId", hb.GetAllLoyaltyProgressHandler)
		api.POST("/rebuild/:customerId", hb.RebuildLoyaltyTrackingHandler)
	}
}

// RegisterNotificationRoutes sets up the in-app notification endpoints.
// Mark-all uses a static prefix because gin cannot mix different param names
// at the same path position.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/:role/:recipientId", hb.GetNotificationsHandler)
		api.GET("/:role/:recipientId/unread", hb.GetUnreadNotificationsHandler)
		api.GET("/:role/:recipientId/unread/count", hb.CountUnreadNotificationsHandler)
		api.PUT("/:id/read", hb.MarkNotificationReadHandler)
		api.PUT("/read-all/:role/:recipientId", hb.MarkAllNotificationsReadHandler)
		api.DELETE("/:id", hb.DeleteNotificationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm ServiMart"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterLoyaltyRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
