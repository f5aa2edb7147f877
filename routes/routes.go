package routes

import (
	"net/http"
	"time"

	userRepo "styledecor/database/repository/user"
	"styledecor/handlers"
	"styledecor/middleware"
	"styledecor/models"
	"styledecor/services/booking"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the wired handlers so route registration stays a
// single call site per domain.
type HandlerBundle struct {
	Users      *handlers.UserHandler
	Catalog    *handlers.CatalogHandler
	Bookings   *handlers.BookingHandler
	Decorators *handlers.DecoratorHandler
	Payments   *handlers.PaymentHandler
	UserRepo   userRepo.UserRepository
}

// SetupCORS applies the shared CORS policy.
func SetupCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Registration and role lookup stay public: sign-in flows call them
	// before a session exists.
	r.POST("/users", hb.Users.RegisterUser)
	r.GET("/users/:email/role", hb.Users.GetUserRole)

	authed := r.Group("/users")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("", hb.Users.ListUsers)
		authed.GET("/profile", hb.Users.Profile)
		authed.PATCH("/:id/role", middleware.RequireRole(hb.UserRepo, models.RoleAdmin), hb.Users.UpdateUserRole)
	}
}

// RegisterCatalogRoutes registers service-catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/services", hb.Catalog.ListServices)
	r.GET("/services/:id", hb.Catalog.GetService)

	admin := r.Group("/services")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(hb.UserRepo, models.RoleAdmin))
	{
		admin.POST("", hb.Catalog.CreateService)
		admin.PATCH("/:id", hb.Catalog.UpdateService)
		admin.DELETE("/:id", hb.Catalog.DeleteService)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(), middleware.ResolveRole(hb.UserRepo))
	{
		bookings.POST("", hb.Bookings.CreateBooking)
		bookings.GET("", hb.Bookings.ListBookings)

		decoratorOnly := middleware.RequireRole(hb.UserRepo, models.RoleDecorator)
		bookings.GET("/decorators", decoratorOnly, hb.Bookings.DecoratorBookings(booking.ScopeActive))
		bookings.GET("/decorators/today", decoratorOnly, hb.Bookings.DecoratorBookings(booking.ScopeToday))
		bookings.GET("/decorators/completed", decoratorOnly, hb.Bookings.DecoratorBookings(booking.ScopeCompleted))

		bookings.GET("/:id", hb.Bookings.GetBooking)
		bookings.PATCH("/:id/mybooking", hb.Bookings.UpdateMyBooking)
		bookings.DELETE("/:id", hb.Bookings.DeleteBooking)

		bookings.PATCH("/:id/status", decoratorOnly, hb.Bookings.UpdateStatus)
		bookings.PATCH("/:id/reject",
			middleware.RequireRole(hb.UserRepo, models.RoleDecorator, models.RoleAdmin),
			hb.Bookings.RejectBooking)
		bookings.PATCH("/:id/assign-decorator",
			middleware.RequireRole(hb.UserRepo, models.RoleAdmin),
			hb.Bookings.AssignDecorator)
	}
}

// RegisterDecoratorRoutes registers decorator-profile endpoints.
func RegisterDecoratorRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/decorators", hb.Decorators.ListDecorators)
	r.GET("/decorators/top", hb.Decorators.TopDecorators)

	admin := r.Group("/decorators")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(hb.UserRepo, models.RoleAdmin))
	{
		admin.POST("", hb.Decorators.CreateDecorator)
		admin.PATCH("/:id/approve", hb.Decorators.ApproveDecorator)
		admin.PATCH("/:id/disable", hb.Decorators.DisableDecorator)
		admin.PATCH("/:id/enable", hb.Decorators.EnableDecorator)
		admin.DELETE("/:id", hb.Decorators.DeleteDecorator)
	}
}

// RegisterPaymentRoutes registers checkout and reconciliation endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	pay := r.Group("")
	pay.Use(middleware.AuthRequired(), middleware.ResolveRole(hb.UserRepo))
	{
		pay.POST("/create-checkout-session", hb.Payments.CreateCheckoutSession)
		pay.PATCH("/payment-success", hb.Payments.PaymentSuccess)
		pay.GET("/payments", hb.Payments.ListPayments)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "style-decor up"})
	})
}

// RegisterAllRoutes wires every route group onto the engine.
func RegisterAllRoutes(r *gin.Engine, hb *HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterDecoratorRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
