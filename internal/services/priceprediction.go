package services

import (
  "context"
  "math"
  "math/rand"
  "sync"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

const (
  historyDays      = 30
  historyPriceFloor = 10

  trendWeight    = 0.6
  seasonalWeight = 0.3
  noiseWeight    = 0.1

  stableBand = 0.02
)

// seasonalFactors indexes expected price pressure by month, January first.
// Positive values mean prices tend to rise (festive demand), negative mean
// discounts (sale seasons).
var seasonalFactors = [12]float64{-0.1, -0.05, 0.05, 0.1, 0.05, 0, -0.05, -0.1, 0.05, 0.1, 0.15, 0.2}

type PricePredictionService interface {
  // Predict derives a prediction from the product's synthetic price history.
  // The history is generated once per product and reused across calls.
  Predict(ctx context.Context, productID uuid.UUID) (*types.PricePrediction, error)
  History(ctx context.Context, productID uuid.UUID) ([]types.PricePoint, error)
  SeasonalTrends() []types.SeasonalTrend
}

type pricePredictionService struct {
  db          *gorm.DB
  log         *logger.Logger
  productRepo repos.ProductRepo

  mu        sync.Mutex
  histories map[uuid.UUID][]types.PricePoint

  now   func() time.Time
  noise func() float64
  walk  func() float64
}

func NewPricePredictionService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo) PricePredictionService {
  rng := rand.New(rand.NewSource(time.Now().UnixNano()))
  return &pricePredictionService{
    db:          db,
    log:         baseLog.With("service", "PricePredictionService"),
    productRepo: productRepo,
    histories:   make(map[uuid.UUID][]types.PricePoint),
    now:         time.Now,
    noise:       rng.Float64,
    walk:        rng.Float64,
  }
}

func (pp *pricePredictionService) Predict(ctx context.Context, productID uuid.UUID) (*types.PricePrediction, error) {
  product, err := pp.productRepo.GetByID(ctx, nil, productID)
  if err != nil {
    return nil, err
  }

  history := pp.historyFor(product)
  trend := priceTrend(history)
  seasonal := seasonalFactors[pp.now().Month()-1]
  volatility := priceVolatility(history)

  change := (trend*trendWeight + seasonal*seasonalWeight + pp.noise()*noiseWeight - 0.05) * volatility

  direction := types.PriceDirectionStable
  switch {
  case change > stableBand:
    direction = types.PriceDirectionUp
  case change < -stableBand:
    direction = types.PriceDirectionDown
  }

  predicted := math.Round(product.Price*(1+change)*100) / 100
  confidence := math.Max(0.6, 1-math.Abs(change)*2)

  return &types.PricePrediction{
    ProductID:      product.ID,
    CurrentPrice:   product.Price,
    PredictedPrice: predicted,
    PriceDirection: direction,
    Confidence:     math.Round(confidence*100) / 100,
    BestBuyTime:    bestBuyTime(direction),
    PriceHistory:   history,
    SeasonalTrends: pp.SeasonalTrends(),
  }, nil
}

func (pp *pricePredictionService) History(ctx context.Context, productID uuid.UUID) ([]types.PricePoint, error) {
  product, err := pp.productRepo.GetByID(ctx, nil, productID)
  if err != nil {
    return nil, err
  }
  return pp.historyFor(product), nil
}

func (pp *pricePredictionService) SeasonalTrends() []types.SeasonalTrend {
  return []types.SeasonalTrend{
    {Season: "Republic Day Sales", AverageDiscount: 0.25, BestDealMonths: []string{"January"}},
    {Season: "Summer Sales", AverageDiscount: 0.15, BestDealMonths: []string{"April", "May"}},
    {Season: "Monsoon Offers", AverageDiscount: 0.20, BestDealMonths: []string{"July", "August"}},
    {Season: "Festive Season", AverageDiscount: 0.35, BestDealMonths: []string{"October", "November"}},
    {Season: "Year-End Clearance", AverageDiscount: 0.30, BestDealMonths: []string{"December"}},
  }
}

// historyFor returns the cached series for a product, generating a 30-day
// random walk backward from the current price on first use.
func (pp *pricePredictionService) historyFor(product *types.Product) []types.PricePoint {
  pp.mu.Lock()
  defer pp.mu.Unlock()

  if history, ok := pp.histories[product.ID]; ok {
    return history
  }

  now := pp.now()
  history := make([]types.PricePoint, historyDays)
  price := product.Price
  for i := historyDays - 1; i >= 0; i-- {
    history[i] = types.PricePoint{
      Date:   now.AddDate(0, 0, -(historyDays - 1 - i)),
      Price:  math.Round(price*100) / 100,
      Source: "tracker",
    }
    // Walk backward with daily moves inside +/-5%, never below the floor.
    price = price * (1 + (pp.walk()-0.5)*0.1)
    price = math.Max(historyPriceFloor, price)
  }

  pp.histories[product.ID] = history
  return history
}

// priceTrend compares the average of the last seven days against the seven
// days before that, as a relative change.
func priceTrend(history []types.PricePoint) float64 {
  if len(history) < 14 {
    return 0
  }
  recent := averagePrice(history[len(history)-7:])
  previous := averagePrice(history[len(history)-14 : len(history)-7])
  if previous == 0 {
    return 0
  }
  return (recent - previous) / previous
}

// priceVolatility scales with the mean absolute daily move, clamped to
// [0.5, 2].
func priceVolatility(history []types.PricePoint) float64 {
  if len(history) < 2 {
    return 1
  }
  var sum float64
  for i := 1; i < len(history); i++ {
    prev := history[i-1].Price
    if prev == 0 {
      continue
    }
    sum += math.Abs(history[i].Price-prev) / prev
  }
  avg := sum / float64(len(history)-1)
  return math.Min(2, math.Max(0.5, 1+avg*5))
}

func averagePrice(points []types.PricePoint) float64 {
  if len(points) == 0 {
    return 0
  }
  var sum float64
  for _, p := range points {
    sum += p.Price
  }
  return sum / float64(len(points))
}

func bestBuyTime(direction string) string {
  switch direction {
  case types.PriceDirectionDown:
    return "Wait 1-2 weeks, the price is trending down"
  case types.PriceDirectionUp:
    return "Buy now, the price is trending up"
  default:
    return "Price is stable, buy when you're ready"
  }
}
