package routes

import (
	"poolride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupGroupRoutes mounts the group endpoints.
func SetupGroupRoutes(r *gin.RouterGroup, groupHandler *handlers.GroupHandler) {
	groups := r.Group("/groups")
	{
		groups.POST("/", groupHandler.CreateGroup)
		groups.GET("/", groupHandler.GetGroups)
		groups.GET("/:groupId", groupHandler.GetGroupByID)
		groups.PUT("/:groupId", groupHandler.UpdateGroup)
		groups.POST("/:groupId/addUser", groupHandler.AddUserToGroup)
		groups.POST("/:groupId/removeUser", groupHandler.RemoveUserFromGroup)
	}
}
