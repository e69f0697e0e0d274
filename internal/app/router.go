package app

import (
  "github.com/gin-gonic/gin"

  "github.com/shopmuse/shopmuse-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
  return server.NewRouter(server.RouterConfig{
    AllowOrigins:          cfg.AllowOrigins,
    SessionMiddleware:     middlewareset.Session,
    SessionHandler:        handlerset.Session,
    ProductHandler:        handlerset.Product,
    InteractionHandler:    handlerset.Interaction,
    RecommendationHandler: handlerset.Recommendation,
    ChatHandler:           handlerset.Chat,
    ComparisonHandler:     handlerset.Comparison,
    BudgetHandler:         handlerset.Budget,
    PredictionHandler:     handlerset.Prediction,
    StockAlertHandler:     handlerset.StockAlert,
    ProfileHandler:        handlerset.Profile,
    InsightHandler:        handlerset.Insight,
  })
}
