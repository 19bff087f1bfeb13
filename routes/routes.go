package routes

import (
	"net/http"
	"time"

	"hormelys/config"
	"hormelys/handlers"
	"hormelys/middleware"
	"hormelys/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers back-office account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)
	}
}

// RegisterArticleRoutes registers blog endpoints. Reads are public; every
// mutation requires a back-office token.
func RegisterArticleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/articles")
	{
		api.GET("", hb.GetArticlesHandler)
		api.GET("/:id", hb.GetArticleByIDHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", hb.CreateArticleHandler)
		protected.PUT("/:id", hb.UpdateArticleHandler)
		protected.PUT("/:id/unpublish", hb.UnpublishArticleHandler)
		protected.DELETE("/:id", hb.DeleteArticleHandler)
	}
}

// RegisterReviewRoutes registers the Google reviews proxy.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/google-reviews", hb.GoogleReviewsHandler)
	}
}

// RegisterAppointmentRoutes sets up the booking endpoints. The public
// booking form goes through reCAPTCHA screening.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.POST("/book", middleware.RecaptchaMiddleware(), hb.BookAppointmentHandler)
		api.GET("", hb.ListAppointmentsHandler)
		api.PUT("/:id/cancel", hb.CancelAppointmentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterArticleRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterHealthRoute(r)
}
