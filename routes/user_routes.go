package routes

import (
	"poolride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes mounts the identity and profile endpoints.
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.POST("/", userHandler.SyncUser)
		users.GET("/me", userHandler.GetMe)
		users.GET("/isdriver", userHandler.IsDriver)
		users.PUT("/me/emergencycontact", userHandler.UpdateEmergencyContact)
	}
}
