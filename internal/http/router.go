package api

import (
	"log"
	stdhttp "net/http"

	intconfig "envy/internal/config"
	h "envy/internal/http/handlers"
	"envy/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(env intconfig.Env, hd *h.Handler) *gin.Engine {
	h.UseJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins, env.PublicBaseURL))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/storage-check", hd.StorageCheck)
		api.GET("/routes", hd.Routes)
		api.GET("/ws", hd.Subscribe)

		api.GET("/locations", hd.ListLocations)
		properties := api.Group("/properties")
		properties.GET("", hd.ListProperties)
		properties.GET("/:id", hd.GetProperty)
		properties.POST("/:id/quote", hd.QuoteStay)

		bookings := api.Group("/bookings")
		bookings.POST("", hd.CreateBooking)
		bookings.GET("/current", hd.GetCurrentBooking)
		bookings.DELETE("/current", hd.ClearCurrentBooking)
		bookings.GET("/:id/confirmation.pdf", hd.BookingConfirmationPDF)

		api.GET("/checkout", hd.Checkout)
		api.POST("/payments/return", hd.PaymentReturn)
		api.GET("/settings/hero", hd.GetHeroMode)

		admin := api.Group("/admin")
		admin.POST("/unlock", hd.Unlock)
		admin.POST("/lock", hd.Lock)

		gated := admin.Group("", middleware.RequireAdmin(hd.Gate))
		gated.POST("/properties", hd.CreateProperty)
		gated.PUT("/properties/:id", hd.UpdateProperty)
		gated.DELETE("/properties/:id", hd.DeleteProperty)
		gated.GET("/bookings", hd.ListBookings)
		gated.GET("/bookings/stats", hd.BookingStats)
		gated.PUT("/bookings/:id/status", hd.UpdateBookingStatus)
		gated.GET("/settings", hd.GetSettings)
		gated.PUT("/settings/hero", hd.SetHeroMode)
		gated.PUT("/settings/gateway", hd.SetGatewayConfig)
		gated.POST("/reset", hd.Reset)
	}

	hd.SetRouter(r)
	return r
}
