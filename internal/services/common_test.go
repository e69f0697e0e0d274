package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/stretchr/testify/require"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/catalog"
  "github.com/shopmuse/shopmuse-backend/internal/db"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type testEnv struct {
  db           *gorm.DB
  log          *logger.Logger
  products     repos.ProductRepo
  interactions repos.InteractionRepo
  profiles     repos.ProfileRepo
  budgets      repos.BudgetRepo
  stockAlerts  repos.StockAlertRepo
  catalog      []*types.Product
}

func newTestEnv(t *testing.T) *testEnv {
  t.Helper()

  log := logger.NewNop()
  gdb, err := db.NewTestDatabase()
  require.NoError(t, err)
  require.NoError(t, catalog.Seed(gdb, log))

  env := &testEnv{
    db:           gdb,
    log:          log,
    products:     repos.NewProductRepo(gdb, log),
    interactions: repos.NewInteractionRepo(gdb, log),
    profiles:     repos.NewProfileRepo(gdb, log),
    budgets:      repos.NewBudgetRepo(gdb, log),
    stockAlerts:  repos.NewStockAlertRepo(gdb, log),
  }

  env.catalog, err = env.products.List(context.Background(), nil)
  require.NoError(t, err)
  require.NotEmpty(t, env.catalog)
  return env
}

func (e *testEnv) addInteraction(t *testing.T, sessionID, productID uuid.UUID, kind string) {
  t.Helper()
  _, err := e.interactions.Create(context.Background(), nil, &types.UserInteraction{
    ID:        uuid.New(),
    SessionID: sessionID,
    ProductID: productID,
    Kind:      kind,
  })
  require.NoError(t, err)
}

func mustMood(t *testing.T, id string) types.ShoppingMood {
  t.Helper()
  mood, ok := types.FindShoppingMood(id)
  require.True(t, ok, "mood %q not defined", id)
  return mood
}

// productByName is a lookup against the seeded catalog.
func (e *testEnv) productByName(t *testing.T, name string) *types.Product {
  t.Helper()
  for _, p := range e.catalog {
    if p.Name == name {
      return p
    }
  }
  t.Fatalf("product %q not in seeded catalog", name)
  return nil
}
