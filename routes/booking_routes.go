package routes

import (
	"github.com/Irina-Gavrilina/shareit/config"
	"github.com/Irina-Gavrilina/shareit/controllers/booking_controller"
	middleware "github.com/Irina-Gavrilina/shareit/middlewares"
	"github.com/Irina-Gavrilina/shareit/middlewares/auth"
	"github.com/Irina-Gavrilina/shareit/services/booking_service"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(router *gin.Engine, service *booking_service.BookingService) {
	bookingController := booking_controller.NewBookingController(service)
	rate := config.GetEnv("RATE_LIMIT", DefaultRateLimit)

	protected := router.Group("/bookings")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("", middleware.NewRateLimiter(rate, "create-booking"), bookingController.Create)
		protected.PATCH("/:booking_id", middleware.NewRateLimiter(rate, "approve-booking"), bookingController.Approve)

		protected.GET("", middleware.NewRateLimiter(rate, "booker-bookings"), bookingController.ListByBooker)
		protected.GET("/owner", middleware.NewRateLimiter(rate, "owner-bookings"), bookingController.ListByOwner)
		protected.GET("/:booking_id", middleware.NewRateLimiter(rate, "get-booking"), bookingController.GetByID)
	}
}
