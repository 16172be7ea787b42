package routes

import (
	"poolride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupDriverRoutes mounts the driver profile endpoints.
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler) {
	drivers := r.Group("/drivers")
	{
		drivers.POST("/", driverHandler.CreateDriver)
		drivers.PUT("/", driverHandler.UpdateDriver)
		drivers.GET("/:driverId", driverHandler.GetDriver)
	}
}
