package seats

import (
	"net/http"

	"aerobook/internal/shared/apperrors"
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

// GetFlightSeatMap handles GET /api/v1/flights/:id/seats
func (c *Controller) GetFlightSeatMap(ctx *gin.Context) {
	flightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("invalid flight id"))
		return
	}

	seatList, err := c.service.GetFlightSeatMap(ctx.Request.Context(), flightID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat map retrieved successfully", SeatMapResponse{
		FlightID: flightID.String(),
		Seats:    ToSeatResponses(seatList),
	})
}
