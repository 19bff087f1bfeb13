package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hormelys/config"
	"hormelys/database"
	appointmentRepo "hormelys/database/repository/appointment"
	articleRepo "hormelys/database/repository/article"
	userRepoPkg "hormelys/database/repository/user"
	"hormelys/handlers"
	"hormelys/middleware"
	"hormelys/routes"
	"hormelys/services/appointment"
	"hormelys/services/article"
	"hormelys/services/notification"
	"hormelys/services/review"
	"hormelys/services/storage"
	"hormelys/services/user"
	"hormelys/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// The Mongo handle is established lazily; the manager shares one
	// in-flight attempt across concurrent first requests.
	dbManager := database.NewManager(config.AppConfig.DatabaseURL, config.AppConfig.DatabaseName)
	utils.InitCache()

	cloudinaryStorageService, err := storage.NewCloudinaryService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo(dbManager)
	artRepo := articleRepo.NewMongoArticleRepo(dbManager)
	userRepo := userRepoPkg.NewMongoUserRepo(dbManager)

	// services.
	mailer := notification.NewSMTPMailer()
	if err := mailer.Verify(); err != nil {
		logger.Sugar().Warnf("main: SMTP relay verification failed: %v", err)
	} else {
		logger.Sugar().Info("main: SMTP relay ready to send emails")
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:   apptRepo,
		Mailer: mailer,
	}
	articleService := &article.DefaultArticleService{
		Repo:    artRepo,
		Storage: cloudinaryStorageService,
	}
	reviewService := &review.GooglePlacesService{
		APIKey:  config.AppConfig.GoogleAPIKey,
		PlaceID: config.AppConfig.GooglePlaceID,
		Cache:   utils.GetCacheClient(),
	}
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	handlers.SetUserService(userService)

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	articleHandler := handlers.NewArticleHandler(articleService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Appointment endpoints.
		GetAvailabilityHandler:   appointmentHandler.GetAvailability,
		BookAppointmentHandler:   appointmentHandler.Book,
		ListAppointmentsHandler:  appointmentHandler.List,
		CancelAppointmentHandler: appointmentHandler.Cancel,

		// Article endpoints.
		CreateArticleHandler:    articleHandler.Create,
		GetArticlesHandler:      articleHandler.GetAll,
		GetArticleByIDHandler:   articleHandler.GetByID,
		UpdateArticleHandler:    articleHandler.Update,
		UnpublishArticleHandler: articleHandler.Unpublish,
		DeleteArticleHandler:    articleHandler.Delete,

		// Review endpoints.
		GoogleReviewsHandler: reviewHandler.GoogleReviews,

		// User endpoints.
		RegisterUserHandler:     handlers.RegisterUserHandler,
		AuthenticateUserHandler: handlers.AuthenticateUserHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), dbManager.Ping)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := dbManager.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to close MongoDB connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
