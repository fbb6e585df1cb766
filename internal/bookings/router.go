package bookings

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes on the given authenticated group
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookingGroup := rg.Group("/bookings")
	{
		bookingGroup.POST("", controller.CreateBooking)
		bookingGroup.GET("", controller.GetUserBookings)
		bookingGroup.GET("/:id", controller.GetBooking)
		bookingGroup.GET("/code/:code", controller.GetBookingByCode)
	}
}
