package app

import (
  "github.com/shopmuse/shopmuse-backend/internal/handlers"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
)

type Handlers struct {
  Session        *handlers.SessionHandler
  Product        *handlers.ProductHandler
  Interaction    *handlers.InteractionHandler
  Recommendation *handlers.RecommendationHandler
  Chat           *handlers.ChatHandler
  Comparison     *handlers.ComparisonHandler
  Budget         *handlers.BudgetHandler
  Prediction     *handlers.PredictionHandler
  StockAlert     *handlers.StockAlertHandler
  Profile        *handlers.ProfileHandler
  Insight        *handlers.InsightHandler
}

func wireHandlers(log *logger.Logger, reposet Repos, serviceset Services) Handlers {
  log.Info("Wiring handlers...")
  return Handlers{
    Session:        handlers.NewSessionHandler(log, serviceset.Session),
    Product:        handlers.NewProductHandler(log, reposet.Product, serviceset.Search),
    Interaction:    handlers.NewInteractionHandler(log, serviceset.Interaction),
    Recommendation: handlers.NewRecommendationHandler(log, serviceset.Recommendation),
    Chat:           handlers.NewChatHandler(log, serviceset.Chat),
    Comparison:     handlers.NewComparisonHandler(log, serviceset.Comparison),
    Budget:         handlers.NewBudgetHandler(log, serviceset.Budget),
    Prediction:     handlers.NewPredictionHandler(log, serviceset.Prediction),
    StockAlert:     handlers.NewStockAlertHandler(log, serviceset.StockAlert),
    Profile:        handlers.NewProfileHandler(log, serviceset.Personalization, reposet.Product),
    Insight:        handlers.NewInsightHandler(log, serviceset.Insight),
  }
}
