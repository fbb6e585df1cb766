package payments

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

// InitiatePayment handles POST /api/v1/bookings/:id/payment
func (c *Controller) InitiatePayment(ctx *gin.Context) {
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

	var req InitiatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	payment, err := c.service.Initiate(ctx.Request.Context(), bookingID, userID, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Payment initiated successfully", payment)
}

// HandleWebhook handles POST /api/v1/payments/webhook. The endpoint is
// reached by the gateway, not by users, and must absorb redeliveries.
func (c *Controller) HandleWebhook(ctx *gin.Context) {
	var req WebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid webhook payload", nil, err.Error())
		return
	}

	if err := c.service.ProcessWebhook(ctx.Request.Context(), req); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Notification processed", nil)
}

// CancelPayment handles POST /api/v1/bookings/:id/payment/cancel
func (c *Controller) CancelPayment(ctx *gin.Context) {
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

	payment, err := c.service.CancelByUser(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment cancelled successfully", payment)
}

// GetPayment handles GET /api/v1/bookings/:id/payment
func (c *Controller) GetPayment(ctx *gin.Context) {
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

	payment, err := c.service.GetByBooking(ctx.Request.Context(), bookingID, userID, middleware.IsAdmin(ctx))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment retrieved successfully", payment)
}
