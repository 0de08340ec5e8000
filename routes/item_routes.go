package routes

import (
	"github.com/Irina-Gavrilina/shareit/config"
	"github.com/Irina-Gavrilina/shareit/controllers/item_controller"
	middleware "github.com/Irina-Gavrilina/shareit/middlewares"
	"github.com/Irina-Gavrilina/shareit/middlewares/auth"
	"github.com/Irina-Gavrilina/shareit/services/item_service"

	"github.com/gin-gonic/gin"
)

// DefaultRateLimit applies when RATE_LIMIT is unset.
const DefaultRateLimit = "60-1m"

func RegisterItemRoutes(router *gin.Engine, service *item_service.ItemService) {
	itemController := item_controller.NewItemController(service)
	rate := config.GetEnv("RATE_LIMIT", DefaultRateLimit)

	protected := router.Group("/items")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("", middleware.NewRateLimiter(rate, "create-item"), itemController.Create)
		protected.GET("", middleware.NewRateLimiter(rate, "owner-items"), itemController.ListOwned)
		protected.GET("/:item_id", middleware.NewRateLimiter(rate, "get-item"), itemController.Get)
	}
}
