package item_controller

import (
	"net/http"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/services/item_service"
	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemController struct {
	Service *item_service.ItemService
}

func NewItemController(service *item_service.ItemService) *ItemController {
	return &ItemController{Service: service}
}

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=1000"`
	Available   *bool  `json:"available" binding:"required"`
}

// Create handles POST /items.
func (ic *ItemController) Create(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid item payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	item, err := ic.Service.CreateItem(c.Request.Context(), item_service.CreateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	}, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListOwned handles GET /items.
func (ic *ItemController) ListOwned(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	views, err := ic.Service.ListOwnerItems(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /items/:item_id.
func (ic *ItemController) Get(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	view, err := ic.Service.GetItem(c.Request.Context(), itemID, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
