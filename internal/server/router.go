package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/shopmuse/shopmuse-backend/internal/handlers"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
)

type RouterConfig struct {
  AllowOrigins          []string
  SessionMiddleware     *middleware.SessionMiddleware
  SessionHandler        *handlers.SessionHandler
  ProductHandler        *handlers.ProductHandler
  InteractionHandler    *handlers.InteractionHandler
  RecommendationHandler *handlers.RecommendationHandler
  ChatHandler           *handlers.ChatHandler
  ComparisonHandler     *handlers.ComparisonHandler
  BudgetHandler         *handlers.BudgetHandler
  PredictionHandler     *handlers.PredictionHandler
  StockAlertHandler     *handlers.StockAlertHandler
  ProfileHandler        *handlers.ProfileHandler
  InsightHandler        *handlers.InsightHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     cfg.AllowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    ExposeHeaders:    []string{middleware.SessionTokenHeader},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/api/session", cfg.SessionHandler.Create)

// ===============
// || Session   ||
// ===============
  api := router.Group("/api")
  api.Use(cfg.SessionMiddleware.EnsureSession())
  // Catalog
  api.GET("/products", cfg.ProductHandler.List)
  api.GET("/products/search", cfg.ProductHandler.Search)
  api.GET("/products/trending", cfg.ProductHandler.Trending)
  api.GET("/products/:id", cfg.ProductHandler.Get)
  // Price prediction
  api.GET("/products/:id/prediction", cfg.PredictionHandler.Predict)
  api.GET("/products/:id/price-history", cfg.PredictionHandler.History)
  api.GET("/prices/seasonal-trends", cfg.PredictionHandler.SeasonalTrends)
  // Interactions
  api.POST("/interactions", cfg.InteractionHandler.Create)
  api.GET("/interactions", cfg.InteractionHandler.List)
  // Recommendations
  api.GET("/recommendations", cfg.RecommendationHandler.Generate)
  api.GET("/recommendations/personalized", cfg.RecommendationHandler.GeneratePersonalized)
  // Chat
  api.POST("/chat", cfg.ChatHandler.Send)
  // Comparison
  api.POST("/compare", cfg.ComparisonHandler.Compare)
  // Budgets
  api.POST("/budgets", cfg.BudgetHandler.Create)
  api.GET("/budgets", cfg.BudgetHandler.List)
  api.GET("/budgets/affordability", cfg.BudgetHandler.Affordability)
  api.GET("/budgets/:id", cfg.BudgetHandler.Get)
  api.POST("/budgets/:id/spend", cfg.BudgetHandler.RecordSpending)
  // Stock alerts
  api.POST("/alerts", cfg.StockAlertHandler.Create)
  api.GET("/alerts", cfg.StockAlertHandler.List)
  api.POST("/alerts/sweep", cfg.StockAlertHandler.Sweep)
  api.POST("/alerts/:id/deactivate", cfg.StockAlertHandler.Deactivate)
  // Profile
  api.GET("/profile", cfg.ProfileHandler.Get)
  api.PATCH("/profile", cfg.ProfileHandler.Update)
  api.POST("/profile/track", cfg.ProfileHandler.Track)
  api.POST("/profile/mood", cfg.ProfileHandler.SetMood)
  api.GET("/profile/moods", cfg.ProfileHandler.Moods)
  api.GET("/profile/seasonal", cfg.ProfileHandler.Seasonal)
  // Insights
  api.GET("/insights", cfg.InsightHandler.Generate)

  return router
}
