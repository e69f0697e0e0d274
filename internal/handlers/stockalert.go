package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type StockAlertHandler struct {
  log               *logger.Logger
  stockAlertService services.StockAlertService
}

func NewStockAlertHandler(log *logger.Logger, stockAlertService services.StockAlertService) *StockAlertHandler {
  return &StockAlertHandler{
    log:               log.With("handler", "StockAlertHandler"),
    stockAlertService: stockAlertService,
  }
}

type createAlertRequest struct {
  ProductID uuid.UUID `json:"product_id" binding:"required"`
  AlertType string    `json:"alert_type" binding:"required"`
  Threshold *float64  `json:"threshold"`
}

func (h *StockAlertHandler) Create(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req createAlertRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  alert, err := h.stockAlertService.Create(c.Request.Context(), sessionID, req.ProductID, req.AlertType, req.Threshold)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_alert_failed", err)
    return
  }
  RespondOK(c, gin.H{"alert": alert})
}

func (h *StockAlertHandler) List(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  alerts, err := h.stockAlertService.List(c.Request.Context(), sessionID)
  if err != nil {
    h.log.Error("List alerts failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "list_alerts_failed", err)
    return
  }
  RespondOK(c, gin.H{"alerts": alerts})
}

func (h *StockAlertHandler) Deactivate(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }
  alertID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_alert_id", err)
    return
  }

  alert, err := h.stockAlertService.Deactivate(c.Request.Context(), sessionID, alertID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "deactivate_alert_failed", err)
    return
  }
  RespondOK(c, gin.H{"alert": alert})
}

// Sweep triggers one sweep on demand, alongside the periodic worker.
func (h *StockAlertHandler) Sweep(c *gin.Context) {
  notifications, err := h.stockAlertService.Sweep(c.Request.Context())
  if err != nil {
    h.log.Error("Manual sweep failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "sweep_failed", err)
    return
  }
  RespondOK(c, gin.H{"notifications": notifications})
}
