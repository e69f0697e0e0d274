package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "gorm.io/datatypes"

  "github.com/shopmuse/shopmuse-backend/internal/cache"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

func newComparisonService(env *testEnv) ComparisonService {
  return NewComparisonService(env.db, env.log, env.products, env.profiles, cache.NewMemoryComparisonCache())
}

func comparedIDs(env *testEnv, t *testing.T, names ...string) []uuid.UUID {
  ids := make([]uuid.UUID, 0, len(names))
  for _, name := range names {
    ids = append(ids, env.productByName(t, name).ID)
  }
  return ids
}

func TestCompareRequiresTwoProducts(t *testing.T) {
  env := newTestEnv(t)
  svc := newComparisonService(env)

  _, err := svc.Compare(context.Background(), uuid.New(), []uuid.UUID{env.catalog[0].ID})
  require.Error(t, err)
}

func TestCompareRejectsUnknownProduct(t *testing.T) {
  env := newTestEnv(t)
  svc := newComparisonService(env)

  _, err := svc.Compare(context.Background(), uuid.New(), []uuid.UUID{env.catalog[0].ID, uuid.New()})
  require.Error(t, err)
  assert.Contains(t, err.Error(), "not found")
}

func TestCompareFactorWeightsSumToOne(t *testing.T) {
  env := newTestEnv(t)
  svc := newComparisonService(env)
  sessionID := uuid.New()

  // Budget preference tilts Price up; the weights must still normalize.
  profile, err := env.profiles.GetOrCreateBySession(context.Background(), nil, sessionID)
  require.NoError(t, err)
  prefs := profile.Preferences.Data()
  prefs.Budget = types.BudgetTierBudget
  profile.Preferences = datatypes.NewJSONType(prefs)
  require.NoError(t, env.profiles.Save(context.Background(), nil, profile))

  ids := comparedIDs(env, t, "Wireless Headphones", "Smart Watch")
  result, err := svc.Compare(context.Background(), sessionID, ids)
  require.NoError(t, err)

  var sum float64
  var priceWeight, maxWeight float64
  for _, f := range result.Factors {
    sum += f.Weight
    if f.Name == "Price" {
      priceWeight = f.Weight
    }
    if f.Weight > maxWeight {
      maxWeight = f.Weight
    }
  }
  assert.InDelta(t, 1.0, sum, 1e-9)
  assert.Equal(t, maxWeight, priceWeight)
}

func TestCompareWinnerIsTopScorer(t *testing.T) {
  env := newTestEnv(t)
  svc := newComparisonService(env)

  ids := comparedIDs(env, t, "Wireless Headphones", "Smart Watch", "Laptop")
  result, err := svc.Compare(context.Background(), uuid.New(), ids)
  require.NoError(t, err)

  require.Len(t, result.Products, 3)
  assert.Equal(t, result.Products[0].ProductID, result.Winner)
  for i := 1; i < len(result.Products); i++ {
    assert.GreaterOrEqual(t, result.Products[i-1].Score, result.Products[i].Score)
  }
  assert.Contains(t, result.Reasoning, result.Products[0].Name)
}

func TestCompareEveryProductHasProsAndCons(t *testing.T) {
  env := newTestEnv(t)
  svc := newComparisonService(env)

  ids := comparedIDs(env, t, "Wireless Headphones", "Laptop")
  result, err := svc.Compare(context.Background(), uuid.New(), ids)
  require.NoError(t, err)

  for _, pc := range result.Products {
    assert.NotEmpty(t, pc.Pros, "product %s", pc.Name)
    assert.NotEmpty(t, pc.Cons, "product %s", pc.Name)
    assert.GreaterOrEqual(t, pc.ValueRating, 1.0)
    assert.LessOrEqual(t, pc.ValueRating, 5.0)
  }
}

func TestCompareCachesByUnorderedProductSet(t *testing.T) {
  env := newTestEnv(t)
  svc := newComparisonService(env)
  sessionID := uuid.New()

  ids := comparedIDs(env, t, "Wireless Headphones", "Smart Watch")
  first, err := svc.Compare(context.Background(), sessionID, ids)
  require.NoError(t, err)

  reversed := []uuid.UUID{ids[1], ids[0]}
  second, err := svc.Compare(context.Background(), sessionID, reversed)
  require.NoError(t, err)

  // Brand scoring carries jitter: identical pointers prove a cache hit.
  assert.Same(t, first, second)
}

func TestComparisonKeyIsOrderIndependent(t *testing.T) {
  a, b := uuid.New(), uuid.New()
  assert.Equal(t, comparisonKey([]uuid.UUID{a, b}), comparisonKey([]uuid.UUID{b, a}))
  assert.Equal(t, comparisonKey([]uuid.UUID{a, b, a}), comparisonKey([]uuid.UUID{b, a}))
}
