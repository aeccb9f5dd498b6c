package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhub/config"
	"stayhub/database"
	locationRepo "stayhub/database/repository/location"
	reservationRepo "stayhub/database/repository/reservation"
	userRepoPkg "stayhub/database/repository/user"
	"stayhub/handlers"
	"stayhub/middleware"
	"stayhub/routes"
	"stayhub/services/auth"
	"stayhub/services/booking"
	"stayhub/services/session"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	locRepo := locationRepo.NewMongoLocationRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()

	// services.
	authService := &auth.DefaultAuthService{Repo: userRepo}
	credentialStore := session.NewRedisCredentialStore(utils.GetSessionCacheClient())
	sessionManager := session.NewDefaultSessionManager(authService, credentialStore)
	sessionManager.Rehydrate()

	bookingService := &booking.DefaultBookingService{
		Repo:      resRepo,
		Locations: locRepo,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Session:     handlers.NewSessionHandler(sessionManager),
		Reservation: handlers.NewReservationHandler(bookingService, logger),
		Location:    handlers.NewLocationHandler(locRepo, bookingService, utils.GetCacheClient()),
		Admin:       handlers.NewAdminHandler(userRepo),
	}
	routes.RegisterRoutes(router, handlerBundle)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
