package tickets

import (
	"net/http"

	"aerobook/internal/shared/apperrors"
	"aerobook/internal/shared/middleware"
	"aerobook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateTickets handles POST /api/v1/bookings/:id/tickets
func (c *Controller) CreateTickets(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid booking id"))
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	issued, err := c.service.Create(ctx.Request.Context(), bookingID, userID, middleware.IsAdmin(ctx))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Tickets issued successfully", issued)
}

// ValidateTicket handles POST /api/v1/tickets/validate
func (c *Controller) ValidateTicket(ctx *gin.Context) {
	var req ValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.Validate(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Ticket validated successfully", result)
}
