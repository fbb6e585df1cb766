package payments

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers payment routes. The webhook endpoint goes on the
// public group (the gateway authenticates via its own notification channel),
// everything else on the authenticated group.
func RegisterRoutes(public *gin.RouterGroup, authenticated *gin.RouterGroup, controller *Controller) {
	public.POST("/payments/webhook", controller.HandleWebhook)

	bookingGroup := authenticated.Group("/bookings/:id/payment")
	{
		bookingGroup.POST("", controller.InitiatePayment)
		bookingGroup.GET("", controller.GetPayment)
		bookingGroup.POST("/cancel", controller.CancelPayment)
	}
}
