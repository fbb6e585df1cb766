package tickets

import (
	"aerobook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers ticket routes on the given authenticated group.
// Validation is a gate/staff operation, not a passenger one.
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/bookings/:id/tickets", controller.CreateTickets)
	rg.POST("/tickets/validate", middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleGate), controller.ValidateTicket)
}
