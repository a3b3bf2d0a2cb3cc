package routes

import (
	"strings"

	"gallery-backend/config"
	adminapi "gallery-backend/internal/api/admin"
	artworksapi "gallery-backend/internal/api/artworks"
	authapi "gallery-backend/internal/api/auth"
	contactapi "gallery-backend/internal/api/contact"
	exhibitionsapi "gallery-backend/internal/api/exhibitions"
	ordersapi "gallery-backend/internal/api/orders"
	"gallery-backend/internal/api/recommendations"
	stripewebhooks "gallery-backend/internal/api/stripewebhook"
	"gallery-backend/internal/api/users"
	"gallery-backend/internal/app/http/middleware"
	domainusers "gallery-backend/internal/domain/users"
	"gallery-backend/internal/infra/uploads"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, rec *recommendations.Handler) {
	// raw body needed for the signature check, so no sanitizer here
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if config.UPLOADS_DIR != "" {
		r.Static(strings.TrimSuffix(uploads.URLPrefix, "/"), config.UPLOADS_DIR)
	}

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/register-artist", authapi.RegisterArtist)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/artworks", artworksapi.ListArtworks)
	public.GET("/artworks/:id", artworksapi.GetArtwork)
	public.GET("/artworks/:id/similar", rec.Similar)
	public.GET("/artists", users.ListArtists)
	public.GET("/artists/:id", users.GetArtist)
	public.GET("/exhibitions", exhibitionsapi.ListExhibitions)
	public.GET("/exhibitions/:id", exhibitionsapi.GetExhibition)
	public.GET("/recommendations/general", rec.General)
	public.POST("/contact", contactapi.SubmitMessage)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.PUT("/me", users.UpdateCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/recommendations", rec.Personalized)
	auth.GET("/user/:id/orders", middleware.RequireSelfOrAdmin("id"), ordersapi.GetUserOrders)
	auth.POST("/orders/artwork", ordersapi.CreateArtworkOrder)
	auth.POST("/orders/exhibition", ordersapi.CreateExhibitionBooking)
	auth.GET("/tickets", ordersapi.ListTickets)

	// Artists manage their own works, admins manage everything
	studio := auth.Group("/")
	studio.Use(middleware.RequireRole(domainusers.RoleArtist, domainusers.RoleAdmin))
	studio.POST("/artworks", artworksapi.CreateArtwork)
	studio.PUT("/artworks/:id", artworksapi.UpdateArtwork)
	studio.DELETE("/artworks/:id", artworksapi.DeleteArtwork)

	// Admin routes
	admin := auth.Group("/")
	admin.Use(middleware.RequireRole(domainusers.RoleAdmin))
	admin.POST("/exhibitions", exhibitionsapi.CreateExhibition)
	admin.PUT("/exhibitions/:id", exhibitionsapi.UpdateExhibition)
	admin.DELETE("/exhibitions/:id", exhibitionsapi.DeleteExhibition)
	admin.GET("/orders", ordersapi.ListAllOrders)
	admin.GET("/messages", contactapi.ListMessages)
	admin.PUT("/messages/:id", contactapi.UpdateMessageStatus)

	adminPanel := r.Group("/admin")
	adminPanel.Use(middleware.AuthMiddleware(), middleware.RequireRole(domainusers.RoleAdmin))
	adminPanel.GET("/stats", adminapi.GetAdminStats)
	adminPanel.GET("/users", adminapi.ListAllUsers)
	adminPanel.GET("/user/:id", adminapi.GetUserDetails)
}
