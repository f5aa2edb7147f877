package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"styledecor/config"
	"styledecor/database"
	bookingRepo "styledecor/database/repository/booking"
	catalogRepo "styledecor/database/repository/catalog"
	decoratorRepo "styledecor/database/repository/decorator"
	paymentRepo "styledecor/database/repository/payment"
	userRepoPkg "styledecor/database/repository/user"
	"styledecor/handlers"
	"styledecor/middleware"
	"styledecor/routes"
	"styledecor/services/booking"
	"styledecor/services/decorator"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.SetupCORS(router)

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	payments := paymentRepo.NewMongoPaymentRepo()
	decorators := decoratorRepo.NewMongoDecoratorRepo()
	users := userRepoPkg.NewMongoUserRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()

	// services.
	gateway := &booking.StripeGateway{SiteDomain: config.AppConfig.SiteDomain}

	crudService := &booking.DefaultCrudService{
		Repo:    bookings,
		Catalog: catalog,
		Logger:  logger,
	}
	statusService := &booking.DefaultStatusService{
		Repo:             bookings,
		Logger:           logger,
		StrictSequencing: config.AppConfig.StrictStatusSequencing,
		Now:              time.Now,
	}
	assignmentService := &booking.DefaultAssignmentService{
		Repo:       bookings,
		Decorators: decorators,
		Logger:     logger,
	}
	reconcileService := &booking.DefaultReconcileService{
		Gateway:  gateway,
		Bookings: bookings,
		Payments: payments,
		Logger:   logger,
	}
	decoratorService := &decorator.DefaultDecoratorService{
		Repo:   decorators,
		Users:  users,
		Logger: logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Users:      handlers.NewUserHandler(users, logger),
		Catalog:    handlers.NewCatalogHandler(catalog, logger),
		Bookings:   handlers.NewBookingHandler(crudService, statusService, assignmentService, logger),
		Decorators: handlers.NewDecoratorHandler(decoratorService, logger),
		Payments:   handlers.NewPaymentHandler(crudService, gateway, reconcileService, payments, logger),
		UserRepo:   users,
	}

	routes.RegisterAllRoutes(router, handlerBundle)

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
