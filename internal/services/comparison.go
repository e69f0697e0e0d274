package services

import (
  "context"
  "fmt"
  "math"
  "math/rand"
  "sort"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/cache"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

type ComparisonService interface {
  // Compare scores the named products against weighted factors and returns
  // a ranked result. Results are cached by the sorted identifier set and the
  // cache never invalidates: the catalog is immutable.
  Compare(ctx context.Context, sessionID uuid.UUID, productIDs []uuid.UUID) (*types.ComparisonResult, error)
}

type comparisonService struct {
  db          *gorm.DB
  log         *logger.Logger
  productRepo repos.ProductRepo
  profileRepo repos.ProfileRepo
  cache       cache.ComparisonCache
  rng         *rand.Rand
}

func NewComparisonService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, profileRepo repos.ProfileRepo, comparisonCache cache.ComparisonCache) ComparisonService {
  return &comparisonService{
    db:          db,
    log:         baseLog.With("service", "ComparisonService"),
    productRepo: productRepo,
    profileRepo: profileRepo,
    cache:       comparisonCache,
    rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
  }
}

func (cs *comparisonService) Compare(ctx context.Context, sessionID uuid.UUID, productIDs []uuid.UUID) (*types.ComparisonResult, error) {
  if len(productIDs) < 2 {
    return nil, fmt.Errorf("at least two products are required to compare")
  }

  key := comparisonKey(productIDs)
  if cached, ok := cs.cache.Get(ctx, key); ok {
    return cached, nil
  }

  products, err := cs.productRepo.GetByIDs(ctx, nil, productIDs)
  if err != nil {
    return nil, fmt.Errorf("load products: %w", err)
  }
  if len(products) != len(uniqueIDs(productIDs)) {
    return nil, fmt.Errorf("one or more products not found")
  }

  factors := cs.comparisonFactors(ctx, sessionID)

  comparisons := make([]types.ProductComparison, 0, len(products))
  minPrice, maxPrice := products[0].Price, products[0].Price
  for _, p := range products {
    minPrice = math.Min(minPrice, p.Price)
    maxPrice = math.Max(maxPrice, p.Price)
  }

  for _, p := range products {
    pc := types.ProductComparison{
      ProductID: p.ID,
      Name:      p.Name,
      Price:     p.Price,
      Rating:    p.Rating,
      Features:  append([]string{}, p.Tags...),
    }
    pc.Score = cs.scoreProduct(p, factors, minPrice, maxPrice)
    pc.ValueRating = valueRating(p, minPrice, maxPrice)
    pc.Pros, pc.Cons = prosAndCons(p, minPrice, maxPrice)
    comparisons = append(comparisons, pc)
  }

  sort.SliceStable(comparisons, func(i, j int) bool {
    return comparisons[i].Score > comparisons[j].Score
  })

  result := &types.ComparisonResult{
    Products:        comparisons,
    Winner:          comparisons[0].ProductID,
    Reasoning:       reasoning(comparisons, factors),
    Factors:         factors,
    Recommendations: cs.recommendations(ctx, sessionID, comparisons),
  }

  cs.cache.Set(ctx, key, result)
  return result, nil
}

// comparisonKey is the composite cache key: sorted identifiers joined.
func comparisonKey(productIDs []uuid.UUID) string {
  ids := make([]string, 0, len(productIDs))
  for _, id := range uniqueIDs(productIDs) {
    ids = append(ids, id.String())
  }
  sort.Strings(ids)
  return strings.Join(ids, "_")
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
  seen := make(map[uuid.UUID]bool, len(ids))
  out := make([]uuid.UUID, 0, len(ids))
  for _, id := range ids {
    if !seen[id] {
      seen[id] = true
      out = append(out, id)
    }
  }
  return out
}

// comparisonFactors returns the weighted factor set, tilted by the session's
// budget preference and renormalized so the weights always sum to 1.
func (cs *comparisonService) comparisonFactors(ctx context.Context, sessionID uuid.UUID) []types.ComparisonFactor {
  factors := []types.ComparisonFactor{
    {Name: "Price", Weight: 0.30, Importance: "critical"},
    {Name: "Quality", Weight: 0.25, Importance: "critical"},
    {Name: "Features", Weight: 0.20, Importance: "important"},
    {Name: "Brand", Weight: 0.15, Importance: "moderate"},
    {Name: "Reviews", Weight: 0.10, Importance: "moderate"},
  }

  budget := ""
  if profile, err := cs.profileRepo.GetBySession(ctx, nil, sessionID); err == nil {
    budget = profile.Preferences.Data().Budget
  }
  switch budget {
  case types.BudgetTierBudget:
    factors[0].Weight = 0.40
  case types.BudgetTierPremium:
    factors[1].Weight = 0.35
  }

  var sum float64
  for _, f := range factors {
    sum += f.Weight
  }
  for i := range factors {
    factors[i].Weight = factors[i].Weight / sum
  }
  return factors
}

func (cs *comparisonService) scoreProduct(p *types.Product, factors []types.ComparisonFactor, minPrice, maxPrice float64) float64 {
  // Price normalized within the compared set: cheapest scores 1, priciest 0.
  priceScore := 0.5
  if maxPrice > minPrice {
    priceScore = (maxPrice - p.Price) / (maxPrice - minPrice)
  }
  qualityScore := p.Rating / 5
  featuresScore := math.Min(1, float64(len(p.Tags))/3)
  brandScore := cs.rng.Float64()
  reviewsScore := p.Rating / 5

  subScores := map[string]float64{
    "Price":    priceScore,
    "Quality":  qualityScore,
    "Features": featuresScore,
    "Brand":    brandScore,
    "Reviews":  reviewsScore,
  }

  var score float64
  for _, f := range factors {
    score += subScores[f.Name] * f.Weight
  }
  return math.Round(score*100) / 100
}

func valueRating(p *types.Product, minPrice, maxPrice float64) float64 {
  pricePos := 0.5
  if maxPrice > minPrice {
    pricePos = (p.Price - minPrice) / (maxPrice - minPrice)
  }
  v := p.Rating + (0.5 - pricePos)
  v = math.Max(1, math.Min(5, v))
  return math.Round(v*10) / 10
}

func prosAndCons(p *types.Product, minPrice, maxPrice float64) ([]string, []string) {
  var pros, cons []string

  if p.Price == minPrice {
    pros = append(pros, "Most affordable option in this comparison")
  }
  if p.Rating >= 4.3 {
    pros = append(pros, fmt.Sprintf("Highly rated by buyers (%.1f/5)", p.Rating))
  }
  if p.HasTag("premium") {
    pros = append(pros, "Premium build and finish")
  }
  if len(pros) == 0 {
    pros = append(pros, "Balanced choice for "+strings.ToLower(p.Category))
  }

  if p.Price == maxPrice && maxPrice > minPrice {
    cons = append(cons, "Most expensive of the set")
  }
  if p.Rating < 4.0 {
    cons = append(cons, "Rating trails the alternatives")
  }
  if len(cons) == 0 {
    cons = append(cons, "Check recent reviews before buying")
  }
  return pros, cons
}

func reasoning(comparisons []types.ProductComparison, factors []types.ComparisonFactor) string {
  top := factors[0]
  for _, f := range factors[1:] {
    if f.Weight > top.Weight {
      top = f
    }
  }
  winner := comparisons[0]
  return fmt.Sprintf("%s wins primarily due to its superior %s, scoring %.2f overall.", winner.Name, strings.ToLower(top.Name), winner.Score)
}

func (cs *comparisonService) recommendations(ctx context.Context, sessionID uuid.UUID, comparisons []types.ProductComparison) []string {
  recs := []string{}
  if len(comparisons) > 1 {
    priceDiff := math.Abs(comparisons[0].Price - comparisons[1].Price)
    if priceDiff > 500 {
      recs = append(recs, fmt.Sprintf("Consider if the %s price difference is worth the additional features", utils.FormatINR(priceDiff)))
    }
  }
  recs = append(recs, "Check for current promotions and discounts")
  recs = append(recs, "Read recent customer reviews for updated feedback")

  if profile, err := cs.profileRepo.GetBySession(ctx, nil, sessionID); err == nil {
    if profile.Preferences.Data().Budget == types.BudgetTierBudget {
      recs = append(recs, "Look for refurbished or open-box alternatives")
    }
  }
  return recs
}
