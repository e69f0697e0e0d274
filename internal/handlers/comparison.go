package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type ComparisonHandler struct {
  log               *logger.Logger
  comparisonService services.ComparisonService
}

func NewComparisonHandler(log *logger.Logger, comparisonService services.ComparisonService) *ComparisonHandler {
  return &ComparisonHandler{
    log:               log.With("handler", "ComparisonHandler"),
    comparisonService: comparisonService,
  }
}

type compareRequest struct {
  ProductIDs []uuid.UUID `json:"product_ids" binding:"required"`
}

func (h *ComparisonHandler) Compare(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req compareRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  result, err := h.comparisonService.Compare(c.Request.Context(), sessionID, req.ProductIDs)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "comparison_failed", err)
    return
  }
  RespondOK(c, gin.H{"comparison": result})
}
