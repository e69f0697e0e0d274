package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type PredictionHandler struct {
  log               *logger.Logger
  predictionService services.PricePredictionService
}

func NewPredictionHandler(log *logger.Logger, predictionService services.PricePredictionService) *PredictionHandler {
  return &PredictionHandler{
    log:               log.With("handler", "PredictionHandler"),
    predictionService: predictionService,
  }
}

func (h *PredictionHandler) Predict(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
    return
  }

  prediction, err := h.predictionService.Predict(c.Request.Context(), productID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "prediction_failed", err)
    return
  }
  RespondOK(c, gin.H{"prediction": prediction})
}

func (h *PredictionHandler) History(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
    return
  }

  history, err := h.predictionService.History(c.Request.Context(), productID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "history_failed", err)
    return
  }
  RespondOK(c, gin.H{"history": history})
}

func (h *PredictionHandler) SeasonalTrends(c *gin.Context) {
  RespondOK(c, gin.H{"trends": h.predictionService.SeasonalTrends()})
}
