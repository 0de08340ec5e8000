package booking_controller

import (
	"net/http"
	"strconv"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/services/booking_service"
	"github.com/Irina-Gavrilina/shareit/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingController exposes the booking lifecycle over HTTP.
type BookingController struct {
	Service *booking_service.BookingService
}

func NewBookingController(service *booking_service.BookingService) *BookingController {
	return &BookingController{Service: service}
}

type CreateBookingRequest struct {
	ItemID uuid.UUID                     `json:"itemId" binding:"required"`
	Start  *booking_models.LocalDateTime `json:"start" binding:"required"`
	End    *booking_models.LocalDateTime `json:"end" binding:"required"`
}

type ItemShort struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
}

type BookerShort struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type BookingResponse struct {
	ID     uuid.UUID                    `json:"id"`
	Start  booking_models.LocalDateTime `json:"start"`
	End    booking_models.LocalDateTime `json:"end"`
	Status booking_models.Status        `json:"status"`
	Item   *ItemShort                   `json:"item"`
	Booker *BookerShort                 `json:"booker"`
}

func toResponse(d *booking_service.BookingDetails) BookingResponse {
	resp := BookingResponse{
		ID:     d.ID,
		Start:  booking_models.LocalDateTime(d.Interval.Start),
		End:    booking_models.LocalDateTime(d.Interval.End),
		Status: d.Status,
	}
	if d.Item != nil {
		resp.Item = &ItemShort{ID: d.Item.ID, Name: d.Item.Name, Description: d.Item.Description, Available: d.Item.Available}
	}
	if d.Booker != nil {
		resp.Booker = &BookerShort{ID: d.Booker.ID, Name: d.Booker.Name, Email: d.Booker.Email}
	}
	return resp
}

func toResponses(details []*booking_service.BookingDetails) []BookingResponse {
	out := make([]BookingResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toResponse(d))
	}
	return out
}

// Create handles POST /bookings.
func (bc *BookingController) Create(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid booking payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	details, err := bc.Service.Create(c.Request.Context(), booking_service.CreateBookingRequest{
		ItemID: req.ItemID,
		Start:  req.Start.Time(),
		End:    req.End.Time(),
	}, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(details))
}

// Approve handles PATCH /bookings/:booking_id?approved=true|false.
func (bc *BookingController) Approve(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	raw, present := c.GetQuery("approved")
	if !present {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'approved' is required"})
		return
	}
	approved, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'approved' must be true or false"})
		return
	}

	details, err := bc.Service.Approve(c.Request.Context(), bookingID, userID, approved)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(details))
}

// GetByID handles GET /bookings/:booking_id.
func (bc *BookingController) GetByID(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	details, err := bc.Service.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(details))
}

// ListByBooker handles GET /bookings?state=.
func (bc *BookingController) ListByBooker(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	details, err := bc.Service.ListByBooker(c.Request.Context(), c.DefaultQuery("state", "ALL"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(details))
}

// ListByOwner handles GET /bookings/owner?state=.
func (bc *BookingController) ListByOwner(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	details, err := bc.Service.ListByOwner(c.Request.Context(), c.DefaultQuery("state", "ALL"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(details))
}

func bookingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return uuid.Nil, false
	}
	return id, true
}
