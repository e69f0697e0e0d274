package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type InsightHandler struct {
  log            *logger.Logger
  insightService services.InsightService
}

func NewInsightHandler(log *logger.Logger, insightService services.InsightService) *InsightHandler {
  return &InsightHandler{
    log:            log.With("handler", "InsightHandler"),
    insightService: insightService,
  }
}

func (h *InsightHandler) Generate(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  insights, err := h.insightService.Generate(c.Request.Context(), sessionID)
  if err != nil {
    h.log.Error("Generate insights failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "insights_failed", err)
    return
  }
  RespondOK(c, gin.H{"insights": insights})
}
