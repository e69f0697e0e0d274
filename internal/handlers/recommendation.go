package handlers

import (
  "fmt"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type RecommendationHandler struct {
  log                   *logger.Logger
  recommendationService services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recommendationService services.RecommendationService) *RecommendationHandler {
  return &RecommendationHandler{
    log:                   log.With("handler", "RecommendationHandler"),
    recommendationService: recommendationService,
  }
}

func (h *RecommendationHandler) Generate(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }
  limit, _ := strconv.Atoi(c.Query("limit"))

  recs, err := h.recommendationService.Generate(c.Request.Context(), sessionID, limit)
  if err != nil {
    h.log.Error("Generate recommendations failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "recommendations_failed", err)
    return
  }
  RespondOK(c, gin.H{"recommendations": recs})
}

func (h *RecommendationHandler) GeneratePersonalized(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }
  limit, _ := strconv.Atoi(c.Query("limit"))

  var mood *types.ShoppingMood
  if moodID := c.Query("mood"); moodID != "" {
    m, found := types.FindShoppingMood(moodID)
    if !found {
      RespondError(c, http.StatusBadRequest, "unknown_mood", fmt.Errorf("unknown shopping mood %q", moodID))
      return
    }
    mood = &m
  }

  recs, err := h.recommendationService.GeneratePersonalized(c.Request.Context(), sessionID, mood, limit)
  if err != nil {
    h.log.Error("Personalized recommendations failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "recommendations_failed", err)
    return
  }
  RespondOK(c, gin.H{"recommendations": recs})
}
