// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"shuttle/config"
	"shuttle/cron"
	"shuttle/database"
	bookingRepoPkg "shuttle/database/repository/booking"
	scheduleRepoPkg "shuttle/database/repository/schedule"
	tripRepoPkg "shuttle/database/repository/trip"
	userRepoPkg "shuttle/database/repository/user"
	vehicleRepoPkg "shuttle/database/repository/vehicle"
	"shuttle/handlers"
	"shuttle/routes"
	bookingSvc "shuttle/services/booking"
	checkinSvc "shuttle/services/checkin"
	"shuttle/services/notification"
	tripSvc "shuttle/services/trip"
	"shuttle/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitCheckInCache()
	utils.FirebaseInit()

	if err := bookingRepoPkg.EnsureBookingIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := tripRepoPkg.EnsureTripIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure trip indexes: %v", err)
	}
	if err := vehicleRepoPkg.EnsureVehicleIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure vehicle indexes: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	tripRepo := tripRepoPkg.NewMongoTripRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	queueClient := cron.NewQueueClient()
	notifier := notification.NewQueueDispatcher(queueClient)

	reservationService := &bookingSvc.DefaultReservationService{
		Bookings:      bookingRepo,
		Vehicles:      vehicleRepo,
		Windows:       scheduleRepo,
		Notifier:      notifier,
		StrictReserve: config.AppConfig.StrictReserve,
		HoldTTL:       config.HoldTTL(),
	}
	tripService := &tripSvc.DefaultTripService{
		Trips:    tripRepo,
		Bookings: bookingRepo,
		Vehicles: vehicleRepo,
		Windows:  scheduleRepo,
		Notifier: notifier,
	}
	checkInService := &checkinSvc.DefaultCheckInService{
		Bookings: bookingRepo,
		TTL:      config.CheckInTTL(),
	}

	// Background workers: sweeps and push delivery.
	sender := notification.NewFCMSender(userRepo)
	cron.InitSweepWorker(reservationService, bookingRepo, sender)
	cron.InitSweepScheduler()

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetCheckInCacheClient()},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Reservations: reservationService,
		Trips:        tripService,
		CheckIn:      checkInService,
		Users:        userRepo,
		Vehicles:     vehicleRepo,
		Windows:      scheduleRepo,
	}

	// Register routes with the assembled handler bundle.
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
