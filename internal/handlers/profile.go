package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type ProfileHandler struct {
  log                    *logger.Logger
  personalizationService services.PersonalizationService
  productRepo            repos.ProductRepo
}

func NewProfileHandler(log *logger.Logger, personalizationService services.PersonalizationService, productRepo repos.ProductRepo) *ProfileHandler {
  return &ProfileHandler{
    log:                    log.With("handler", "ProfileHandler"),
    personalizationService: personalizationService,
    productRepo:            productRepo,
  }
}

func (h *ProfileHandler) Get(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  profile, err := h.personalizationService.GetProfile(c.Request.Context(), sessionID)
  if err != nil {
    h.log.Error("Get profile failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "get_profile_failed", err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}

type trackRequest struct {
  Type      string     `json:"type" binding:"required"`
  ProductID *uuid.UUID `json:"product_id"`
  Query     string     `json:"query"`
  Category  string     `json:"category"`
  Amount    float64    `json:"amount"`
}

func (h *ProfileHandler) Track(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req trackRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  event := services.TrackEvent{
    Type:     req.Type,
    Query:    req.Query,
    Category: req.Category,
    Amount:   req.Amount,
  }
  if req.ProductID != nil {
    product, err := h.productRepo.GetByID(c.Request.Context(), nil, *req.ProductID)
    if err != nil {
      RespondError(c, http.StatusNotFound, "product_not_found", err)
      return
    }
    event.Product = product
  }

  profile, err := h.personalizationService.TrackInteraction(c.Request.Context(), sessionID, event)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "track_failed", err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}

func (h *ProfileHandler) Update(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req services.PreferenceUpdate
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  profile, err := h.personalizationService.UpdatePreferences(c.Request.Context(), sessionID, req)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "update_profile_failed", err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}

type moodRequest struct {
  MoodID string `json:"mood_id" binding:"required"`
}

func (h *ProfileHandler) SetMood(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req moodRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  profile, err := h.personalizationService.SetMood(c.Request.Context(), sessionID, req.MoodID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "set_mood_failed", err)
    return
  }
  RespondOK(c, gin.H{"profile": profile})
}

func (h *ProfileHandler) Moods(c *gin.Context) {
  RespondOK(c, gin.H{"moods": h.personalizationService.Moods()})
}

func (h *ProfileHandler) Seasonal(c *gin.Context) {
  RespondOK(c, gin.H{"seasonal": h.personalizationService.Seasonal()})
}
