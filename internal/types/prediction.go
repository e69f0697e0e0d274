package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  PriceDirectionUp     = "up"
  PriceDirectionDown   = "down"
  PriceDirectionStable = "stable"
)

type PricePoint struct {
  Date   time.Time `json:"date"`
  Price  float64   `json:"price"`
  Source string    `json:"source"`
}

type SeasonalTrend struct {
  Season          string   `json:"season"`
  AverageDiscount float64  `json:"average_discount"`
  BestDealMonths  []string `json:"best_deal_months"`
}

// PricePrediction is derived on demand from a synthetic price-history series;
// it is never persisted.
type PricePrediction struct {
  ProductID      uuid.UUID       `json:"product_id"`
  CurrentPrice   float64         `json:"current_price"`
  PredictedPrice float64         `json:"predicted_price"`
  PriceDirection string          `json:"price_direction"`
  Confidence     float64         `json:"confidence"`
  BestBuyTime    string          `json:"best_buy_time"`
  PriceHistory   []PricePoint    `json:"price_history"`
  SeasonalTrends []SeasonalTrend `json:"seasonal_trends"`
}
