// File: servimart/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servimart/config"
	"servimart/cron"
	"servimart/database"
	bookingRepoPkg "servimart/database/repository/booking"
	catalogRepoPkg "servimart/database/repository/catalog"
	customerRepoPkg "servimart/database/repository/customer"
	loyaltyRepoPkg "servimart/database/repository/loyalty"
	notificationRepoPkg "servimart/database/repository/notification"
	providerRepoPkg "servimart/database/repository/provider"
	"servimart/handlers"
	"servimart/routes"
	"servimart/services/booking"
	"servimart/services/email"
	"servimart/services/loyalty"
	"servimart/services/notification"
	"servimart/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Task queue client shared by notification push and email dispatch.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer queueClient.Close()

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	loyaltyRepo := loyaltyRepoPkg.NewMongoLoyaltyRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := loyaltyRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure loyalty indexes: %v", err)
	}

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:   notificationRepo,
		Queue:  queueClient,
		Logger: logger,
	}

	loyaltyService := &loyalty.DefaultLoyaltyService{
		Repo:        loyaltyRepo,
		BookingRepo: bookingRepo,
		Providers:   providerRepo,
		Notifier:    notificationService,
		Cache:       utils.GetCacheClient(),
		Logger:      logger,
	}

	queuedEmailService := &email.QueuedEmailService{
		Queue:  queueClient,
		Logger: logger,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Customers: customerRepo,
		Providers: providerRepo,
		Catalog:   catalogRepo,
		Loyalty:   loyaltyService,
		Notifier:  notificationService,
		Email:     queuedEmailService,
		Tx:        database.WithTransaction,
		Logger:    logger,
	}

	// The worker delivers queued pushes and emails in background.
	resendEmailService := email.NewResendEmailService(
		config.AppConfig.ResendAPIKey,
		config.AppConfig.EmailSenderAddress,
		config.AppConfig.EmailSenderName,
		logger,
	)
	cron.InitDispatchWorker(resendEmailService, customerRepo, providerRepo, notificationRepo)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Bookings:      bookingService,
		Loyalty:       loyaltyService,
		Notifications: notificationService,
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
