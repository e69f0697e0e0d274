package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/shopmuse/shopmuse-backend/internal/types"
)

func newInteractionService(env *testEnv) InteractionService {
  return NewInteractionService(env.db, env.log, env.interactions, env.products, newPersonalizationService(env))
}

func TestRecordInteractionFeedsProfile(t *testing.T) {
  env := newTestEnv(t)
  svc := newInteractionService(env)
  sessionID := uuid.New()
  product := env.productByName(t, "Wireless Headphones")

  interaction, err := svc.Record(context.Background(), sessionID, product.ID, types.InteractionView)
  require.NoError(t, err)
  assert.Equal(t, product.ID, interaction.ProductID)

  profile, err := env.profiles.GetBySession(context.Background(), nil, sessionID)
  require.NoError(t, err)
  assert.Contains(t, profile.Preferences.Data().Categories, product.Category)
}

func TestRecordInteractionValidation(t *testing.T) {
  env := newTestEnv(t)
  svc := newInteractionService(env)

  _, err := svc.Record(context.Background(), uuid.New(), env.catalog[0].ID, "hover")
  require.Error(t, err)

  _, err = svc.Record(context.Background(), uuid.New(), uuid.New(), types.InteractionView)
  require.Error(t, err)
}

func TestListInteractionsIsSessionScoped(t *testing.T) {
  env := newTestEnv(t)
  svc := newInteractionService(env)
  sessionID := uuid.New()

  _, err := svc.Record(context.Background(), sessionID, env.catalog[0].ID, types.InteractionClick)
  require.NoError(t, err)
  _, err = svc.Record(context.Background(), uuid.New(), env.catalog[1].ID, types.InteractionView)
  require.NoError(t, err)

  interactions, err := svc.List(context.Background(), sessionID)
  require.NoError(t, err)
  require.Len(t, interactions, 1)
  assert.Equal(t, types.InteractionClick, interactions[0].Kind)
}
