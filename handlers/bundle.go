package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the handlers wired in main and consumed by the route
// registration.
type HandlerBundle struct {
	// Appointment endpoints.
	GetAvailabilityHandler   gin.HandlerFunc
	BookAppointmentHandler   gin.HandlerFunc
	ListAppointmentsHandler  gin.HandlerFunc
	CancelAppointmentHandler gin.HandlerFunc

	// Article endpoints.
	CreateArticleHandler    gin.HandlerFunc
	GetArticlesHandler      gin.HandlerFunc
	GetArticleByIDHandler   gin.HandlerFunc
	UpdateArticleHandler    gin.HandlerFunc
	UnpublishArticleHandler gin.HandlerFunc
	DeleteArticleHandler    gin.HandlerFunc

	// Review endpoints.
	GoogleReviewsHandler gin.HandlerFunc

	// User endpoints.
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
}
