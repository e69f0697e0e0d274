package app

import (
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/cache"
  "github.com/shopmuse/shopmuse-backend/internal/clients/redis"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type Services struct {
  Session         services.SessionService
  Assistant       services.AssistantClient
  Intent          services.IntentClassifier
  Search          services.SearchService
  Interaction     services.InteractionService
  Personalization services.PersonalizationService
  Recommendation  services.RecommendationService
  Comparison      services.ComparisonService
  Budget          services.BudgetService
  Prediction      services.PricePredictionService
  StockAlert      services.StockAlertService
  Insight         services.InsightService
  Chat            services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
  log.Info("Wiring services...")

  assistant, err := services.NewAssistantClient(log)
  if err != nil {
    return Services{}, err
  }
  assistant = services.NewBreakerAssistant(assistant, log)

  // Redis is optional; without it comparison results stay in process memory.
  comparisonCache := cache.ComparisonCache(cache.NewMemoryComparisonCache())
  if rdb, err := redis.NewClient(); err != nil {
    log.Warn("Redis unavailable, using in-memory comparison cache", "error", err)
  } else {
    comparisonCache = cache.NewRedisComparisonCache(rdb, log)
  }

  sessionService := services.NewSessionService(log, cfg.JWTSecretKey, cfg.SessionTTL)
  intentClassifier := services.NewIntentClassifier()
  searchService := services.NewSearchService(db, log, reposet.Product, reposet.Interaction)
  personalizationService := services.NewPersonalizationService(db, log, reposet.Profile)
  interactionService := services.NewInteractionService(db, log, reposet.Interaction, reposet.Product, personalizationService)
  recommendationService := services.NewRecommendationService(db, log, reposet.Product, reposet.Interaction, reposet.Profile, assistant)
  comparisonService := services.NewComparisonService(db, log, reposet.Product, reposet.Profile, comparisonCache)
  budgetService := services.NewBudgetService(db, log, reposet.Budget)
  predictionService := services.NewPricePredictionService(db, log, reposet.Product)
  stockAlertService := services.NewStockAlertService(db, log, reposet.StockAlert, reposet.Product)
  insightService := services.NewInsightService(db, log, reposet.Product, reposet.Interaction, reposet.Budget, predictionService)
  chatService := services.NewChatService(
    db,
    log,
    intentClassifier,
    searchService,
    recommendationService,
    comparisonService,
    budgetService,
    predictionService,
    personalizationService,
    assistant,
    reposet.Product,
    reposet.Profile,
  )

  return Services{
    Session:         sessionService,
    Assistant:       assistant,
    Intent:          intentClassifier,
    Search:          searchService,
    Interaction:     interactionService,
    Personalization: personalizationService,
    Recommendation:  recommendationService,
    Comparison:      comparisonService,
    Budget:          budgetService,
    Prediction:      predictionService,
    StockAlert:      stockAlertService,
    Insight:         insightService,
    Chat:            chatService,
  }, nil
}
