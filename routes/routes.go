package routes

import (
	"net/http"
	"time"

	"mightymoves/handlers"
	"mightymoves/middleware"
	"mightymoves/models"
	"mightymoves/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPreferenceRoutes registers theme endpoints.
func RegisterPreferenceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	theme := api.Group("/theme")
	{
		theme.GET("", hb.Theme.GetTheme)
		theme.POST("/toggle", hb.Theme.Toggle)
	}
}

// RegisterAuthRoutes registers sign-up, sign-in and session endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", hb.Auth.Register)
		auth.POST("/login", hb.Auth.Login)
		auth.POST("/logout", hb.Auth.Logout)
		auth.GET("/me", hb.Auth.Me)
	}
}

// RegisterCatalogRoutes registers the public service catalog, legal documents and tracking lookup.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/services", hb.Catalog.ListServices)
	api.GET("/legal", hb.Catalog.ListLegal)
	api.GET("/legal/:id", hb.Catalog.GetLegal)
	api.GET("/track/:trackingID", hb.Tracking.Track)
}

// RegisterBookingRoutes sets up the booking form endpoints and the customer dashboard.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	forms := api.Group("/forms/:service")
	{
		forms.GET("", hb.Booking.GetForm)
		forms.DELETE("", hb.Booking.DiscardForm)
		forms.PUT("/fields/:name", hb.Booking.SetField)
		forms.POST("/payment", hb.Booking.SelectPayment)
		forms.POST("/payment/close", hb.Booking.ClosePayment)
		forms.POST("/terms", hb.Booking.SetTerms)
		forms.POST("/submit", hb.Booking.Submit)
		forms.POST("/reset", hb.Booking.Reset)
	}

	api.GET("/bookings", middleware.RequireSignedIn(hb.Sessions), hb.Booking.MyBookings)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(hb.AdminToken))
		adminGroup.GET("/bookings", hb.Admin.ListBookings)
		adminGroup.GET("/bookings/history", hb.Admin.History)
		adminGroup.GET("/stats", hb.Admin.Stats)
		adminGroup.GET("/bookings/:id/modal/:kind", hb.Admin.OpenModal)
		adminGroup.POST("/bookings/:id/status", hb.Admin.Confirm(models.ModalStatus))
		adminGroup.POST("/bookings/:id/worker", hb.Admin.Confirm(models.ModalWorker))
		adminGroup.POST("/bookings/:id/notes", hb.Admin.Confirm(models.ModalNotes))
		adminGroup.POST("/bookings/:id/approve", hb.Admin.Approve)
		adminGroup.GET("/notifications", hb.Admin.Notifications)
		adminGroup.POST("/notifications/:index/open", hb.Admin.OpenNotification)
		adminGroup.POST("/notifications/:index/read", hb.Admin.MarkRead)
		adminGroup.DELETE("/notifications", hb.Admin.ClearNotifications)
		adminGroup.PUT("/tracking/:trackingID/location", hb.Tracking.UpdateLocation)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the last health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status := "ok"
		if !health.Healthy() {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "message": "Hi, I'm Mighty Moves", "checks": health})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := hb.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.ClientSessionMiddleware(hb.SessionSecret, hb.SecureCookies))
	RegisterPreferenceRoutes(api, hb)
	RegisterAuthRoutes(api, hb)
	RegisterCatalogRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
