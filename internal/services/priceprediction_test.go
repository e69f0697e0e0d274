package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/shopmuse/shopmuse-backend/internal/types"
)

// newPredictionService pins the clock to June (zero seasonal pressure) and
// both random sources to their midpoints, which makes the generated history
// flat and the prediction fully deterministic.
func newPredictionService(env *testEnv) *pricePredictionService {
  svc := NewPricePredictionService(env.db, env.log, env.products).(*pricePredictionService)
  svc.now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
  svc.noise = func() float64 { return 0.5 }
  svc.walk = func() float64 { return 0.5 }
  return svc
}

func TestPredictUnknownProduct(t *testing.T) {
  env := newTestEnv(t)
  svc := newPredictionService(env)

  _, err := svc.Predict(context.Background(), uuid.New())
  require.Error(t, err)
}

func TestFlatHistoryPredictsStable(t *testing.T) {
  env := newTestEnv(t)
  svc := newPredictionService(env)
  product := env.productByName(t, "Wireless Headphones")

  prediction, err := svc.Predict(context.Background(), product.ID)
  require.NoError(t, err)

  assert.Equal(t, types.PriceDirectionStable, prediction.PriceDirection)
  assert.Equal(t, product.Price, prediction.CurrentPrice)
  assert.Equal(t, product.Price, prediction.PredictedPrice)
  assert.Equal(t, 1.0, prediction.Confidence)
  assert.Contains(t, prediction.BestBuyTime, "stable")
}

func TestHistoryHasThirtyDaysEndingAtCurrentPrice(t *testing.T) {
  env := newTestEnv(t)
  svc := newPredictionService(env)
  product := env.productByName(t, "Laptop")

  history, err := svc.History(context.Background(), product.ID)
  require.NoError(t, err)

  require.Len(t, history, 30)
  assert.Equal(t, product.Price, history[len(history)-1].Price)
  for i := 1; i < len(history); i++ {
    assert.True(t, history[i].Date.After(history[i-1].Date))
    assert.GreaterOrEqual(t, history[i].Price, 10.0)
  }
}

func TestHistoryIsCachedPerProduct(t *testing.T) {
  env := newTestEnv(t)
  svc := NewPricePredictionService(env.db, env.log, env.products).(*pricePredictionService)
  product := env.productByName(t, "Smart Watch")

  first, err := svc.History(context.Background(), product.ID)
  require.NoError(t, err)
  second, err := svc.History(context.Background(), product.ID)
  require.NoError(t, err)

  // The walk is random, so equal series means the first one was reused.
  assert.Equal(t, first, second)
}

func TestRisingHistoryPredictsUp(t *testing.T) {
  env := newTestEnv(t)
  svc := newPredictionService(env)
  product := env.productByName(t, "Wireless Headphones")

  // The walk runs backward from today, so a low factor shrinks past prices
  // and the series rises toward the current price.
  svc.walk = func() float64 { return 0 }

  prediction, err := svc.Predict(context.Background(), product.ID)
  require.NoError(t, err)

  assert.Equal(t, types.PriceDirectionUp, prediction.PriceDirection)
  assert.Greater(t, prediction.PredictedPrice, prediction.CurrentPrice)
  assert.GreaterOrEqual(t, prediction.Confidence, 0.6)
  assert.Contains(t, prediction.BestBuyTime, "Buy now")
}

func TestFallingHistoryPredictsDown(t *testing.T) {
  env := newTestEnv(t)
  svc := newPredictionService(env)
  product := env.productByName(t, "Wireless Headphones")

  svc.walk = func() float64 { return 1 }

  prediction, err := svc.Predict(context.Background(), product.ID)
  require.NoError(t, err)

  assert.Equal(t, types.PriceDirectionDown, prediction.PriceDirection)
  assert.Less(t, prediction.PredictedPrice, prediction.CurrentPrice)
  assert.Contains(t, prediction.BestBuyTime, "Wait")
}

func TestConfidenceBounds(t *testing.T) {
  env := newTestEnv(t)
  svc := NewPricePredictionService(env.db, env.log, env.products)

  for _, p := range env.catalog[:10] {
    prediction, err := svc.Predict(context.Background(), p.ID)
    require.NoError(t, err)
    assert.GreaterOrEqual(t, prediction.Confidence, 0.6)
    assert.LessOrEqual(t, prediction.Confidence, 1.0)
  }
}

func TestSeasonalTrendsCoverTheYear(t *testing.T) {
  env := newTestEnv(t)
  svc := NewPricePredictionService(env.db, env.log, env.products)

  trends := svc.SeasonalTrends()
  require.NotEmpty(t, trends)
  for _, tr := range trends {
    assert.NotEmpty(t, tr.Season)
    assert.NotEmpty(t, tr.BestDealMonths)
    assert.Greater(t, tr.AverageDiscount, 0.0)
    assert.Less(t, tr.AverageDiscount, 1.0)
  }
}
