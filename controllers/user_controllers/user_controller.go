package user_controllers

import (
	"net/http"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/services/item_service"
	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
)

// UserController handles user registration.
type UserController struct {
	Service *item_service.ItemService
}

func NewUserController(service *item_service.ItemService) *UserController {
	return &UserController{Service: service}
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=512"`
}

// Register handles POST /users.
func (uc *UserController) Register(c *gin.Context) {
	logger.InfoLogger.Info("Register user called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Error("Invalid payload: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.Service.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
