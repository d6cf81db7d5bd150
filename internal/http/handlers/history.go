package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aulagen/aulagen-backend/internal/http/response"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
	"github.com/aulagen/aulagen-backend/internal/services"
)

type HistoryHandler struct {
	log            *logger.Logger
	historyService services.HistoryService
}

func NewHistoryHandler(log *logger.Logger, historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		log:            log.With("handler", "HistoryHandler"),
		historyService: historyService,
	}
}

func (h *HistoryHandler) ListPublications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.historyService.RecentPublications(c.Request.Context(), c.Query("courseId"), limit)
	if err != nil {
		h.log.Error("ListPublications failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_publications_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"publications": runs})
}
