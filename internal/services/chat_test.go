package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/shopmuse/shopmuse-backend/internal/cache"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

func newChatService(env *testEnv, assistant AssistantClient) ChatService {
  return NewChatService(
    env.db,
    env.log,
    NewIntentClassifier(),
    newSearchService(env),
    newRecommendationService(env, assistant),
    NewComparisonService(env.db, env.log, env.products, env.profiles, cache.NewMemoryComparisonCache()),
    newBudgetService(env),
    newPredictionService(env),
    newPersonalizationService(env),
    assistant,
    env.products,
    env.profiles,
  )
}

func TestHandleMessageRejectsEmptyText(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  _, err := svc.HandleMessage(context.Background(), uuid.New(), "   ")
  require.Error(t, err)
}

func TestSearchMessageReturnsProductsAndTracksContext(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))
  sessionID := uuid.New()

  reply, err := svc.HandleMessage(context.Background(), sessionID, "find wireless headphones under 5000")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageProduct, reply.Type)
  assert.Equal(t, types.ChatSenderAssistant, reply.Sender)
  require.NotNil(t, reply.Metadata)
  require.NotEmpty(t, reply.Metadata.Products)
  for _, p := range reply.Metadata.Products {
    assert.LessOrEqual(t, p.Price, 5000.0)
  }

  profile, err := env.profiles.GetBySession(context.Background(), nil, sessionID)
  require.NoError(t, err)
  recent := profile.Behavior.Data().SearchPatterns.RecentSearches
  require.NotEmpty(t, recent)
  assert.Equal(t, "find wireless headphones under 5000", recent[0])
  assert.Equal(t, IntentProductSearch, profile.Context.Data().LastIntent)
}

func TestComparisonMessageComparesMentionedProducts(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "compare headphones vs watch")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageComparison, reply.Type)
  require.NotNil(t, reply.Metadata)
  assert.Len(t, reply.Metadata.Products, 2)
  assert.NotEmpty(t, reply.Metadata.Suggestions)
  assert.Contains(t, reply.Text, "wins")
}

func TestComparisonMessageAsksForProducts(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "what is the difference")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageText, reply.Type)
  assert.Contains(t, reply.Text, "compare")
}

func TestRecommendationMessage(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "recommend something for me")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageRecommendation, reply.Type)
  require.NotNil(t, reply.Metadata)
  assert.Len(t, reply.Metadata.Products, 3)
}

func TestBudgetMessageListsAffordablePicks(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "show me something cheap under 1000")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageProduct, reply.Type)
  require.NotNil(t, reply.Metadata)
  assert.Equal(t, "budget", reply.Metadata.ActionType)
  require.NotEmpty(t, reply.Metadata.Products)
  for _, p := range reply.Metadata.Products {
    assert.LessOrEqual(t, p.Price, 1000.0)
  }
}

func TestPriceInquiryMentionsTrend(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "what is the price of headphones")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageProduct, reply.Type)
  require.NotNil(t, reply.Metadata)
  require.Len(t, reply.Metadata.Products, 1)
  assert.Contains(t, reply.Text, reply.Metadata.Products[0].Name)
  assert.Equal(t, "price", reply.Metadata.ActionType)
}

func TestHelpMessageListsCapabilities(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "help me out")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageText, reply.Type)
  require.NotNil(t, reply.Metadata)
  assert.NotEmpty(t, reply.Metadata.Suggestions)
}

func TestTrendingMessage(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "what is popular right now")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageProduct, reply.Type)
  require.NotNil(t, reply.Metadata)
  assert.Len(t, reply.Metadata.Products, 5)
  assert.Equal(t, "trending", reply.Metadata.ActionType)
}

func TestGeneralChatUsesAssistant(t *testing.T) {
  env := newTestEnv(t)
  svc := newChatService(env, newStubAssistantForTest(env.log))

  reply, err := svc.HandleMessage(context.Background(), uuid.New(), "hello there")
  require.NoError(t, err)

  assert.Equal(t, types.ChatMessageText, reply.Type)
  require.NotNil(t, reply.Metadata)
  assert.Equal(t, "chat", reply.Metadata.ActionType)
  assert.NotEmpty(t, reply.Text)
}

func TestGeneralChatFallbackUsesRecentSearches(t *testing.T) {
  env := newTestEnv(t)
  stub := newStubAssistantForTest(env.log)
  svc := newChatService(env, stub)
  sessionID := uuid.New()

  _, err := svc.HandleMessage(context.Background(), sessionID, "find running shoes")
  require.NoError(t, err)

  stub.FailNext()
  reply, err := svc.HandleMessage(context.Background(), sessionID, "hello there")
  require.NoError(t, err)

  assert.Contains(t, reply.Text, "find running shoes")
}
