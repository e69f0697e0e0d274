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

  "github.com/shopmuse/shopmuse-backend/internal/catalog"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

const defaultAveragePrice = 15000 // assumed mid-range before any views exist

type Recommendation struct {
  Product     types.Product `json:"product"`
  Explanation string        `json:"explanation"`
  Score       int           `json:"score"`
  Confidence  int           `json:"confidence"`
}

type RecommendationService interface {
  // Generate asks the assistant first and falls back to the local heuristic
  // on any assistant error.
  Generate(ctx context.Context, sessionID uuid.UUID, limit int) ([]Recommendation, error)
  // GenerateLocal runs only the local weighted-score heuristic.
  GenerateLocal(ctx context.Context, sessionID uuid.UUID, limit int) ([]Recommendation, error)
  // GeneratePersonalized biases the local heuristic with a shopping mood.
  GeneratePersonalized(ctx context.Context, sessionID uuid.UUID, mood *types.ShoppingMood, limit int) ([]Recommendation, error)
}

type sessionHistory struct {
  seen       map[uuid.UUID]bool
  viewedIDs  []string
  likedIDs   []string
  categories []string
  avgPrice   float64
}

type recommendationService struct {
  db              *gorm.DB
  log             *logger.Logger
  productRepo     repos.ProductRepo
  interactionRepo repos.InteractionRepo
  profileRepo     repos.ProfileRepo
  assistant       AssistantClient
  rng             *rand.Rand
}

func NewRecommendationService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, interactionRepo repos.InteractionRepo, profileRepo repos.ProfileRepo, assistant AssistantClient) RecommendationService {
  return &recommendationService{
    db:              db,
    log:             baseLog.With("service", "RecommendationService"),
    productRepo:     productRepo,
    interactionRepo: interactionRepo,
    profileRepo:     profileRepo,
    assistant:       assistant,
    rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
  }
}

func (rs *recommendationService) Generate(ctx context.Context, sessionID uuid.UUID, limit int) ([]Recommendation, error) {
  if limit <= 0 {
    limit = 3
  }

  products, history, err := rs.loadHistory(ctx, sessionID)
  if err != nil {
    return nil, err
  }

  prefs := AssistantPreferences{
    Categories: history.categories,
    PriceRange: types.PriceRange{
      Min: math.Max(0, history.avgPrice*0.5),
      Max: history.avgPrice * 1.5,
    },
    BrowsedProducts:   history.viewedIDs,
    PreviousPurchases: history.likedIDs,
  }

  aiRec, err := rs.assistant.Recommend(ctx, prefs, products)
  if err != nil {
    // The one resilience behavior that matters: assistant failure degrades
    // transparently to the local heuristic.
    rs.log.Warn("Assistant recommendations failed, falling back to local", "session_id", sessionID, "error", err)
    return rs.rank(products, history, nil, limit), nil
  }

  results := make([]Recommendation, 0, limit)
  used := make(map[uuid.UUID]bool)
  for i, p := range aiRec.Products {
    if history.seen[p.ID] {
      continue
    }
    explanation := "Recommended based on your preferences"
    if i < len(aiRec.Explanations) {
      explanation = aiRec.Explanations[i]
    }
    results = append(results, Recommendation{
      Product:     *p,
      Explanation: explanation,
      Score:       95 - len(results)*5,
      Confidence:  int(aiRec.Confidence * 100),
    })
    used[p.ID] = true
    if len(results) == limit {
      break
    }
  }

  if len(results) < limit {
    for _, rec := range rs.rank(products, history, used, limit-len(results)) {
      results = append(results, rec)
    }
  }
  if len(results) > limit {
    results = results[:limit]
  }
  return results, nil
}

func (rs *recommendationService) GenerateLocal(ctx context.Context, sessionID uuid.UUID, limit int) ([]Recommendation, error) {
  if limit <= 0 {
    limit = 3
  }
  products, history, err := rs.loadHistory(ctx, sessionID)
  if err != nil {
    return nil, err
  }
  return rs.rank(products, history, nil, limit), nil
}

func (rs *recommendationService) GeneratePersonalized(ctx context.Context, sessionID uuid.UUID, mood *types.ShoppingMood, limit int) ([]Recommendation, error) {
  if limit <= 0 {
    limit = 3
  }
  products, history, err := rs.loadHistory(ctx, sessionID)
  if err != nil {
    return nil, err
  }

  if mood != nil && len(mood.Categories) > 0 {
    history.categories = mood.Categories
  }
  if mood != nil {
    history.avgPrice *= mood.PriceModifier
  }

  recs := rs.rank(products, history, nil, limit)
  if mood != nil {
    for i := range recs {
      recs[i].Explanation = fmt.Sprintf("Ideal for your %s mood. %s", strings.ToLower(mood.Name), recs[i].Explanation)
    }
  }
  return recs, nil
}

func (rs *recommendationService) loadHistory(ctx context.Context, sessionID uuid.UUID) ([]*types.Product, *sessionHistory, error) {
  products, err := rs.productRepo.List(ctx, nil)
  if err != nil {
    return nil, nil, fmt.Errorf("list products: %w", err)
  }

  interactions, err := rs.interactionRepo.ListBySession(ctx, nil, sessionID)
  if err != nil {
    return nil, nil, fmt.Errorf("list interactions: %w", err)
  }

  history := &sessionHistory{seen: make(map[uuid.UUID]bool)}
  viewed := make(map[uuid.UUID]bool)
  for _, in := range interactions {
    switch in.Kind {
    case types.InteractionView:
      viewed[in.ProductID] = true
      history.seen[in.ProductID] = true
      history.viewedIDs = append(history.viewedIDs, in.ProductID.String())
    case types.InteractionLike:
      history.seen[in.ProductID] = true
      history.likedIDs = append(history.likedIDs, in.ProductID.String())
    }
  }

  categorySet := make(map[string]bool)
  var viewedPriceSum float64
  var viewedPriceCount int
  for _, p := range products {
    if !history.seen[p.ID] {
      continue
    }
    if !categorySet[p.Category] {
      categorySet[p.Category] = true
      history.categories = append(history.categories, p.Category)
    }
    if viewed[p.ID] {
      viewedPriceSum += p.Price
      viewedPriceCount++
    }
  }

  history.avgPrice = defaultAveragePrice
  if viewedPriceCount > 0 {
    history.avgPrice = viewedPriceSum / float64(viewedPriceCount)
  }
  return products, history, nil
}

// rank runs the local weighted scoring over unseen products and returns the
// top results. exclude lists products already emitted by the assistant path.
func (rs *recommendationService) rank(products []*types.Product, history *sessionHistory, exclude map[uuid.UUID]bool, limit int) []Recommendation {
  categorySet := make(map[string]bool, len(history.categories))
  for _, c := range history.categories {
    categorySet[c] = true
  }

  eligible := func(p *types.Product) bool {
    return !history.seen[p.ID] && !exclude[p.ID]
  }

  var candidates []*types.Product
  for _, p := range products {
    if !eligible(p) {
      continue
    }
    categoryMatch := len(categorySet) == 0 || categorySet[p.Category]
    priceMatch := p.Price >= history.avgPrice*0.5 && p.Price <= history.avgPrice*1.5
    if categoryMatch || priceMatch {
      candidates = append(candidates, p)
    }
  }

  // Preference filter too narrow: fall back to the full unseen catalog.
  if len(candidates) < limit {
    candidates = candidates[:0]
    for _, p := range products {
      if eligible(p) {
        candidates = append(candidates, p)
      }
    }
  }

  type scored struct {
    product    *types.Product
    score      float64
    confidence float64
  }
  scoredProducts := make([]scored, 0, len(candidates))
  for _, p := range candidates {
    score := 50.0
    confidence := 60.0

    if categorySet[p.Category] {
      score += 20
      confidence += 15
    }
    if history.avgPrice > 0 {
      priceDiff := math.Abs(p.Price-history.avgPrice) / history.avgPrice
      if priceDiff < 0.3 {
        score += 15
        confidence += 10
      }
    }
    for _, tag := range catalog.PopularTags {
      if p.HasTag(tag) {
        score += 10
        confidence += 8
        break
      }
    }

    // Jitter keeps the list from being identical every visit.
    score += rs.rng.Float64() * 15
    confidence += rs.rng.Float64() * 12

    score = math.Min(100, math.Max(50, score))
    confidence = math.Min(100, math.Max(60, confidence))
    scoredProducts = append(scoredProducts, scored{p, score, confidence})
  }

  sort.SliceStable(scoredProducts, func(i, j int) bool {
    return scoredProducts[i].score > scoredProducts[j].score
  })
  if len(scoredProducts) > limit {
    scoredProducts = scoredProducts[:limit]
  }

  results := make([]Recommendation, 0, len(scoredProducts))
  for i, sp := range scoredProducts {
    results = append(results, Recommendation{
      Product:     *sp.product,
      Explanation: rs.explain(sp.product, history, i),
      Score:       int(math.Round(sp.score)),
      Confidence:  int(math.Round(sp.confidence)),
    })
  }
  return results
}

func (rs *recommendationService) explain(p *types.Product, history *sessionHistory, index int) string {
  topCategory := "quality products"
  if len(history.categories) > 0 {
    topCategory = history.categories[0]
  }
  price := utils.FormatINR(p.Price)
  tags := strings.Join(p.Tags, ", ")
  if len(p.Tags) > 2 {
    tags = strings.Join(p.Tags[:2], ", ")
  }

  templates := []string{
    fmt.Sprintf("Based on your interest in %s, this %s is an excellent choice. It offers great value at %s and has features that align with your preferences.", topCategory, p.Name, price),
    fmt.Sprintf("This %s caught our attention because it matches your browsing patterns. With a price of %s, it's positioned well within your preferred range and offers the quality you're looking for.", p.Name, price),
    fmt.Sprintf("Our recommendation engine selected this %s specifically for you. It's in the %s category and priced at %s, making it a smart choice based on your shopping behavior.", p.Name, p.Category, price),
    fmt.Sprintf("Perfect match! This %s aligns with your preferences for %s products. At %s, it offers excellent features: %s.", p.Name, strings.ToLower(p.Category), price, tags),
    fmt.Sprintf("Highly recommended based on your activity! This %s combines quality and value at %s. It's popular among users with similar preferences in %s.", p.Name, price, strings.ToLower(p.Category)),
  }
  return templates[index%len(templates)]
}
