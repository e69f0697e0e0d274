package types

const (
  InsightPriceTrend         = "price_trend"
  InsightDealOpportunity    = "deal_opportunity"
  InsightBudgetTip          = "budget_tip"
  InsightSeasonalAdvice     = "seasonal_advice"
  InsightAlternativeProduct = "alternative_product"
)

type ShoppingInsight struct {
  Type          string   `json:"type"`
  Title         string   `json:"title"`
  Description   string   `json:"description"`
  Action        string   `json:"action"`
  Priority      string   `json:"priority"`
  SavingsAmount *float64 `json:"savings_amount,omitempty"`
  Confidence    float64  `json:"confidence"`
}

func InsightPriorityRank(priority string) int {
  switch priority {
  case "high":
    return 2
  case "medium":
    return 1
  }
  return 0
}
