package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/shopmuse/shopmuse-backend/internal/types"
)

func newStockAlertService(env *testEnv) *stockAlertService {
  return NewStockAlertService(env.db, env.log, env.stockAlerts, env.products).(*stockAlertService)
}

func TestCreateStockAlertSnapshotsProductName(t *testing.T) {
  env := newTestEnv(t)
  svc := newStockAlertService(env)
  sessionID := uuid.New()
  product := env.productByName(t, "Wireless Headphones")

  alert, err := svc.Create(context.Background(), sessionID, product.ID, types.StockAlertBackInStock, nil)
  require.NoError(t, err)

  assert.Equal(t, product.Name, alert.ProductName)
  assert.True(t, alert.IsActive)
  assert.Nil(t, alert.TriggeredAt)
}

func TestCreateStockAlertValidation(t *testing.T) {
  env := newTestEnv(t)
  svc := newStockAlertService(env)

  _, err := svc.Create(context.Background(), uuid.New(), env.catalog[0].ID, "sold_out", nil)
  require.Error(t, err)

  _, err = svc.Create(context.Background(), uuid.New(), uuid.New(), types.StockAlertDeal, nil)
  require.Error(t, err)
}

func TestDeactivateIsSessionScoped(t *testing.T) {
  env := newTestEnv(t)
  svc := newStockAlertService(env)
  sessionID := uuid.New()

  alert, err := svc.Create(context.Background(), sessionID, env.catalog[0].ID, types.StockAlertLowStock, nil)
  require.NoError(t, err)

  _, err = svc.Deactivate(context.Background(), uuid.New(), alert.ID)
  require.Error(t, err)

  updated, err := svc.Deactivate(context.Background(), sessionID, alert.ID)
  require.NoError(t, err)
  assert.False(t, updated.IsActive)
}

func TestSweepFiresAndStampsTriggeredAt(t *testing.T) {
  env := newTestEnv(t)
  svc := newStockAlertService(env)
  sessionID := uuid.New()

  threshold := 2500.0
  _, err := svc.Create(context.Background(), sessionID, env.catalog[0].ID, types.StockAlertPriceDrop, &threshold)
  require.NoError(t, err)
  _, err = svc.Create(context.Background(), sessionID, env.catalog[1].ID, types.StockAlertBackInStock, nil)
  require.NoError(t, err)

  // A sample above every bar fires everything in one pass.
  svc.sample = func() float64 { return 0.99 }

  fired, err := svc.Sweep(context.Background())
  require.NoError(t, err)
  require.Len(t, fired, 2)
  for _, n := range fired {
    assert.NotNil(t, n.Alert.TriggeredAt)
    assert.NotEmpty(t, n.Message)
  }

  // Alerts never retire themselves; a later sweep can fire them again.
  fired, err = svc.Sweep(context.Background())
  require.NoError(t, err)
  assert.Len(t, fired, 2)

  alerts, err := svc.List(context.Background(), sessionID)
  require.NoError(t, err)
  require.Len(t, alerts, 2)
  for _, a := range alerts {
    assert.True(t, a.IsActive)
    assert.NotNil(t, a.TriggeredAt)
  }
}

func TestDeactivatedAlertLeavesSweep(t *testing.T) {
  env := newTestEnv(t)
  svc := newStockAlertService(env)
  sessionID := uuid.New()

  alert, err := svc.Create(context.Background(), sessionID, env.catalog[0].ID, types.StockAlertDeal, nil)
  require.NoError(t, err)

  svc.sample = func() float64 { return 0.99 }

  _, err = svc.Deactivate(context.Background(), sessionID, alert.ID)
  require.NoError(t, err)

  fired, err := svc.Sweep(context.Background())
  require.NoError(t, err)
  assert.Empty(t, fired)
}

func TestSweepBelowBarFiresNothing(t *testing.T) {
  env := newTestEnv(t)
  svc := newStockAlertService(env)

  _, err := svc.Create(context.Background(), uuid.New(), env.catalog[0].ID, types.StockAlertLowStock, nil)
  require.NoError(t, err)

  svc.sample = func() float64 { return 0.1 }

  fired, err := svc.Sweep(context.Background())
  require.NoError(t, err)
  assert.Empty(t, fired)
}

func TestPriceDropMessageMentionsThreshold(t *testing.T) {
  threshold := 1999.0
  alert := &types.StockAlert{
    ProductName: "Smart Watch",
    AlertType:   types.StockAlertPriceDrop,
    Threshold:   &threshold,
  }
  msg := notificationMessage(alert)
  assert.Contains(t, msg, "Smart Watch")
  assert.Contains(t, msg, "1,999")
}
