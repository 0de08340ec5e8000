package routes

import (
	"github.com/Irina-Gavrilina/shareit/controllers/user_controllers"
	middleware "github.com/Irina-Gavrilina/shareit/middlewares"
	"github.com/Irina-Gavrilina/shareit/services/item_service"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, service *item_service.ItemService) {
	userController := user_controllers.NewUserController(service)

	// Public routes
	router.POST("/users", middleware.NewRateLimiter("10-1m", "register"), userController.Register)
}
