package types

import "github.com/google/uuid"

type ComparisonFactor struct {
  Name       string  `json:"name"`
  Weight     float64 `json:"weight"`
  Importance string  `json:"importance"`
}

type ProductComparison struct {
  ProductID   uuid.UUID `json:"product_id"`
  Name        string    `json:"name"`
  Price       float64   `json:"price"`
  Rating      float64   `json:"rating"`
  Features    []string  `json:"features"`
  Pros        []string  `json:"pros"`
  Cons        []string  `json:"cons"`
  Score       float64   `json:"score"`
  ValueRating float64   `json:"value_rating"`
}

// ComparisonResult is derived and cached by a composite key of the sorted
// product identifiers; recomputed only on cache miss.
type ComparisonResult struct {
  Products        []ProductComparison `json:"products"`
  Winner          uuid.UUID           `json:"winner"`
  Reasoning       string              `json:"reasoning"`
  Factors         []ComparisonFactor  `json:"factors"`
  Recommendations []string            `json:"recommendations"`
}
