package routes

import (
	"poolride/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHistoryRoutes mounts the ride history endpoint.
func SetupHistoryRoutes(r *gin.RouterGroup, historyHandler *handlers.HistoryHandler) {
	history := r.Group("/history")
	{
		history.GET("/", historyHandler.GetHistory)
	}
}
