package services

import (
  "context"
  "fmt"
  "math"
  "sort"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

const maxInsights = 6

type InsightService interface {
  // Generate assembles insights from the session's viewed products, budget
  // state and the calendar, ordered by priority.
  Generate(ctx context.Context, sessionID uuid.UUID) ([]types.ShoppingInsight, error)
}

type insightService struct {
  db              *gorm.DB
  log             *logger.Logger
  productRepo     repos.ProductRepo
  interactionRepo repos.InteractionRepo
  budgetRepo      repos.BudgetRepo
  predictions     PricePredictionService
  now             func() time.Time
}

func NewInsightService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, interactionRepo repos.InteractionRepo, budgetRepo repos.BudgetRepo, predictions PricePredictionService) InsightService {
  return &insightService{
    db:              db,
    log:             baseLog.With("service", "InsightService"),
    productRepo:     productRepo,
    interactionRepo: interactionRepo,
    budgetRepo:      budgetRepo,
    predictions:     predictions,
    now:             time.Now,
  }
}

func (is *insightService) Generate(ctx context.Context, sessionID uuid.UUID) ([]types.ShoppingInsight, error) {
  viewed, err := is.viewedProducts(ctx, sessionID)
  if err != nil {
    return nil, err
  }

  var insights []types.ShoppingInsight
  insights = append(insights, is.priceInsights(ctx, viewed)...)
  insights = append(insights, is.budgetInsights(ctx, sessionID)...)
  insights = append(insights, is.seasonalInsight())
  insights = append(insights, is.alternativeInsights(ctx, viewed)...)

  sort.SliceStable(insights, func(i, j int) bool {
    return types.InsightPriorityRank(insights[i].Priority) > types.InsightPriorityRank(insights[j].Priority)
  })
  if len(insights) > maxInsights {
    insights = insights[:maxInsights]
  }
  return insights, nil
}

func (is *insightService) viewedProducts(ctx context.Context, sessionID uuid.UUID) ([]*types.Product, error) {
  interactions, err := is.interactionRepo.ListBySessionAndKinds(ctx, nil, sessionID, []string{types.InteractionView, types.InteractionLike})
  if err != nil {
    return nil, fmt.Errorf("list interactions: %w", err)
  }
  ids := make([]uuid.UUID, 0, len(interactions))
  seen := make(map[uuid.UUID]bool)
  for _, in := range interactions {
    if !seen[in.ProductID] {
      seen[in.ProductID] = true
      ids = append(ids, in.ProductID)
    }
  }
  return is.productRepo.GetByIDs(ctx, nil, ids)
}

// priceInsights flags confidently-falling prices on products the shopper has
// already looked at.
func (is *insightService) priceInsights(ctx context.Context, viewed []*types.Product) []types.ShoppingInsight {
  var insights []types.ShoppingInsight
  for _, p := range viewed {
    prediction, err := is.predictions.Predict(ctx, p.ID)
    if err != nil {
      is.log.Warn("Price prediction failed for insight", "product_id", p.ID, "error", err)
      continue
    }
    if prediction.PriceDirection != types.PriceDirectionDown || prediction.Confidence <= 0.7 {
      continue
    }
    savings := math.Round((p.Price-prediction.PredictedPrice)*100) / 100
    insights = append(insights, types.ShoppingInsight{
      Type:          types.InsightPriceTrend,
      Title:         fmt.Sprintf("%s may get cheaper", p.Name),
      Description:   fmt.Sprintf("The price is trending down from %s. Waiting could save you %s.", utils.FormatINR(p.Price), utils.FormatINR(savings)),
      Action:        "Set a price drop alert",
      Priority:      "high",
      SavingsAmount: &savings,
      Confidence:    prediction.Confidence,
    })
  }
  return insights
}

func (is *insightService) budgetInsights(ctx context.Context, sessionID uuid.UUID) []types.ShoppingInsight {
  plans, err := is.budgetRepo.ListBySession(ctx, nil, sessionID)
  if err != nil {
    is.log.Warn("Budget lookup failed for insight", "session_id", sessionID, "error", err)
    return nil
  }
  if len(plans) == 0 {
    return []types.ShoppingInsight{{
      Type:        types.InsightBudgetTip,
      Title:       "Set up a budget plan",
      Description: "Shoppers with a budget plan overspend less. Create one to track your spending by category.",
      Action:      "Create a budget plan",
      Priority:    "medium",
      Confidence:  0.9,
    }}
  }

  plan := plans[len(plans)-1]
  var insights []types.ShoppingInsight
  if plan.TotalBudget > 0 {
    ratio := plan.SpentAmount / plan.TotalBudget
    if ratio >= 0.8 {
      insights = append(insights, types.ShoppingInsight{
        Type:        types.InsightBudgetTip,
        Title:       "Budget running low",
        Description: fmt.Sprintf("You've used %.0f%% of %q. Only %s remains.", ratio*100, plan.Name, utils.FormatINR(plan.RemainingAmount)),
        Action:      "Review your spending",
        Priority:    "high",
        Confidence:  1,
      })
    } else if ratio <= 0.3 {
      insights = append(insights, types.ShoppingInsight{
        Type:        types.InsightBudgetTip,
        Title:       "You're well within budget",
        Description: fmt.Sprintf("%s of %q is still available.", utils.FormatINR(plan.RemainingAmount), plan.Name),
        Action:      "Treat yourself to something from your wishlist",
        Priority:    "low",
        Confidence:  1,
      })
    }
  }
  return insights
}

func (is *insightService) seasonalInsight() types.ShoppingInsight {
  seasonal := seasonalForMonth(is.now().Month())
  return types.ShoppingInsight{
    Type:        types.InsightSeasonalAdvice,
    Title:       fmt.Sprintf("It's %s season", seasonal.Season),
    Description: seasonal.Message,
    Action:      fmt.Sprintf("Browse %s", seasonal.Categories[0]),
    Priority:    "low",
    Confidence:  0.8,
  }
}

// alternativeInsights suggests cheaper same-category products, with a nudge
// toward sustainable picks when they exist.
func (is *insightService) alternativeInsights(ctx context.Context, viewed []*types.Product) []types.ShoppingInsight {
  var insights []types.ShoppingInsight
  for _, p := range viewed {
    peers, err := is.productRepo.ListByCategory(ctx, nil, p.Category)
    if err != nil {
      continue
    }
    var best *types.Product
    for _, peer := range peers {
      if peer.ID == p.ID || peer.Price >= p.Price {
        continue
      }
      if best == nil || peer.Price < best.Price {
        best = peer
      }
      if peer.HasTag("sustainable") || peer.HasTag("eco-friendly") {
        best = peer
        break
      }
    }
    if best == nil {
      continue
    }
    savings := math.Round((p.Price-best.Price)*100) / 100
    description := fmt.Sprintf("%s costs %s less than %s.", best.Name, utils.FormatINR(savings), p.Name)
    if best.HasTag("sustainable") || best.HasTag("eco-friendly") {
      description += " It's also an eco-friendly choice."
    }
    insights = append(insights, types.ShoppingInsight{
      Type:          types.InsightAlternativeProduct,
      Title:         fmt.Sprintf("Alternative to %s", p.Name),
      Description:   description,
      Action:        fmt.Sprintf("View %s", best.Name),
      Priority:      "medium",
      SavingsAmount: &savings,
      Confidence:    0.75,
    })
    if len(insights) >= 2 {
      break
    }
  }
  return insights
}
