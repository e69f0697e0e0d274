package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type InteractionHandler struct {
  log                *logger.Logger
  interactionService services.InteractionService
}

func NewInteractionHandler(log *logger.Logger, interactionService services.InteractionService) *InteractionHandler {
  return &InteractionHandler{
    log:                log.With("handler", "InteractionHandler"),
    interactionService: interactionService,
  }
}

type createInteractionRequest struct {
  ProductID uuid.UUID `json:"product_id" binding:"required"`
  Kind      string    `json:"kind" binding:"required"`
}

func (h *InteractionHandler) Create(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req createInteractionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  interaction, err := h.interactionService.Record(c.Request.Context(), sessionID, req.ProductID, req.Kind)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "record_interaction_failed", err)
    return
  }
  RespondOK(c, gin.H{"interaction": interaction})
}

func (h *InteractionHandler) List(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  interactions, err := h.interactionService.List(c.Request.Context(), sessionID)
  if err != nil {
    h.log.Error("List interactions failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "list_interactions_failed", err)
    return
  }
  RespondOK(c, gin.H{"interactions": interactions})
}
