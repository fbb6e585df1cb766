package seats

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers seat inventory routes on the given router group
func RegisterRoutes(rg *gin.RouterGroup, controller *Controller) {
	flightGroup := rg.Group("/flights")
	{
		flightGroup.GET("/:id/seats", controller.GetFlightSeatMap)
	}
}
