package handlers

import (
	"poolride/internal/middleware"
	"poolride/internal/services"
	"poolride/internal/utils"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	historyService services.HistoryService
}

func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetHistory returns the caller's ride history, newest first.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	entries, err := h.historyService.GetHistory(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "History retrieved", entries)
}
