package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartpark/config"
	"smartpark/cron"
	"smartpark/database"
	bookingRepoPkg "smartpark/database/repository/booking"
	spotRepoPkg "smartpark/database/repository/spot"
	userRepoPkg "smartpark/database/repository/user"
	"smartpark/handlers"
	"smartpark/middleware"
	"smartpark/routes"
	"smartpark/services/booking"
	"smartpark/services/notification"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	spotRepo := spotRepoPkg.NewMongoSpotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	notifier := notification.NewAsynqService()
	defer notifier.Close()

	bookingService := &booking.DefaultService{
		Bookings: bookingRepo,
		Spots:    spotRepo,
		Users:    userRepo,
		Notifier: notifier,
		Logger:   logger,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	spotHandler := handlers.NewSpotHandler(spotRepo, bookingRepo, utils.GetCacheClient(), logger)
	authHandler := handlers.NewAuthHandler(userRepo, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		RegisterHandler: authHandler.Register,
		LoginHandler:    authHandler.Login,

		ListSpotsHandler:  spotHandler.ListSpots,
		GetSpotHandler:    spotHandler.GetSpot,
		CreateSpotHandler: spotHandler.CreateSpot,
		UpdateSpotHandler: spotHandler.UpdateSpot,
		DeleteSpotHandler: spotHandler.DeleteSpot,

		CreateBookingHandler:   bookingHandler.CreateBooking,
		ListBookingsHandler:    bookingHandler.ListBookings,
		GetBookingHandler:      bookingHandler.GetBooking,
		CancelBookingHandler:   bookingHandler.CancelBooking,
		CompleteBookingHandler: bookingHandler.CompleteBooking,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background work: the email worker drains the notification queue,
	// the sweeper reconciles stale bookings.
	cron.InitEmailWorker(notification.NewMailer())

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := &cron.Sweeper{
		Bookings: bookingRepo,
		Spots:    spotRepo,
		Interval: time.Duration(config.AppConfig.SweepIntervalSeconds) * time.Second,
		Grace:    time.Duration(config.AppConfig.GracePeriodMinutes) * time.Minute,
		Logger:   logger,
	}
	go sweeper.Run(sweepCtx)

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

	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to close mongo connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
