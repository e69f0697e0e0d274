package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func newRecommendationService(env *testEnv, assistant AssistantClient) RecommendationService {
  return NewRecommendationService(env.db, env.log, env.products, env.interactions, env.profiles, assistant)
}

func TestGenerateLocalExcludesLikedProduct(t *testing.T) {
  env := newTestEnv(t)
  sessionID := uuid.New()
  liked := env.productByName(t, "Wireless Headphones")
  env.addInteraction(t, sessionID, liked.ID, "like")

  svc := newRecommendationService(env, newStubAssistantForTest(env.log))
  recs, err := svc.GenerateLocal(context.Background(), sessionID, 3)
  require.NoError(t, err)
  require.Len(t, recs, 3)

  for _, rec := range recs {
    assert.NotEqual(t, liked.ID, rec.Product.ID)
  }
}

func TestGenerateLocalExcludesViewedProducts(t *testing.T) {
  env := newTestEnv(t)
  sessionID := uuid.New()
  viewed := env.productByName(t, "Smart Watch")
  env.addInteraction(t, sessionID, viewed.ID, "view")

  svc := newRecommendationService(env, newStubAssistantForTest(env.log))
  recs, err := svc.GenerateLocal(context.Background(), sessionID, 5)
  require.NoError(t, err)

  for _, rec := range recs {
    assert.NotEqual(t, viewed.ID, rec.Product.ID)
  }
}

func TestGenerateLocalOutputSize(t *testing.T) {
  env := newTestEnv(t)
  svc := newRecommendationService(env, newStubAssistantForTest(env.log))

  // Fresh session: eligible set is the whole catalog.
  recs, err := svc.GenerateLocal(context.Background(), uuid.New(), 3)
  require.NoError(t, err)
  assert.Len(t, recs, 3)

  // Limit larger than the catalog: size is the eligible candidate count.
  recs, err = svc.GenerateLocal(context.Background(), uuid.New(), len(env.catalog)+10)
  require.NoError(t, err)
  assert.Len(t, recs, len(env.catalog))
}

func TestGenerateLocalScoreBounds(t *testing.T) {
  env := newTestEnv(t)
  svc := newRecommendationService(env, newStubAssistantForTest(env.log))

  recs, err := svc.GenerateLocal(context.Background(), uuid.New(), 10)
  require.NoError(t, err)
  require.NotEmpty(t, recs)

  for _, rec := range recs {
    assert.GreaterOrEqual(t, rec.Score, 50)
    assert.LessOrEqual(t, rec.Score, 100)
    assert.GreaterOrEqual(t, rec.Confidence, 60)
    assert.LessOrEqual(t, rec.Confidence, 100)
    assert.NotEmpty(t, rec.Explanation)
  }
}

func TestGenerateLocalRankingIsDescending(t *testing.T) {
  env := newTestEnv(t)
  svc := newRecommendationService(env, newStubAssistantForTest(env.log))

  recs, err := svc.GenerateLocal(context.Background(), uuid.New(), 10)
  require.NoError(t, err)

  for i := 1; i < len(recs); i++ {
    assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
  }
}

func TestGenerateFallsBackToLocalOnAssistantError(t *testing.T) {
  env := newTestEnv(t)
  stub := newStubAssistantForTest(env.log)
  svc := newRecommendationService(env, stub)

  sessionID := uuid.New()
  liked := env.productByName(t, "Laptop")
  env.addInteraction(t, sessionID, liked.ID, "like")

  stub.FailNext()
  recs, err := svc.Generate(context.Background(), sessionID, 3)
  require.NoError(t, err)
  require.Len(t, recs, 3)
  for _, rec := range recs {
    assert.NotEqual(t, liked.ID, rec.Product.ID)
  }
}

func TestGenerateNeverReturnsSeenProducts(t *testing.T) {
  env := newTestEnv(t)
  svc := newRecommendationService(env, newStubAssistantForTest(env.log))

  sessionID := uuid.New()
  liked := env.productByName(t, "Wireless Headphones")
  viewed := env.productByName(t, "Air Fryer")
  env.addInteraction(t, sessionID, liked.ID, "like")
  env.addInteraction(t, sessionID, viewed.ID, "view")

  recs, err := svc.Generate(context.Background(), sessionID, 5)
  require.NoError(t, err)
  require.NotEmpty(t, recs)
  for _, rec := range recs {
    assert.NotEqual(t, liked.ID, rec.Product.ID)
    assert.NotEqual(t, viewed.ID, rec.Product.ID)
  }
}

func TestGeneratePersonalizedUsesMoodCategories(t *testing.T) {
  env := newTestEnv(t)
  svc := newRecommendationService(env, newStubAssistantForTest(env.log))

  mood := mustMood(t, "fitness_motivated")
  recs, err := svc.GeneratePersonalized(context.Background(), uuid.New(), &mood, 3)
  require.NoError(t, err)
  require.Len(t, recs, 3)
  for _, rec := range recs {
    assert.Contains(t, rec.Explanation, "fitness journey")
  }
}
