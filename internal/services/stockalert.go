package services

import (
  "context"
  "fmt"
  "math/rand"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

// Trigger probabilities per alert type. A sweep fires an alert when the drawn
// sample exceeds the type's threshold, so rarer events have higher bars.
var sweepThresholds = map[string]float64{
  types.StockAlertBackInStock: 0.8,
  types.StockAlertLowStock:    0.7,
  types.StockAlertPriceDrop:   0.85,
  types.StockAlertDeal:        0.9,
}

// StockNotification is the outcome of a fired alert.
type StockNotification struct {
  Alert   *types.StockAlert `json:"alert"`
  Message string            `json:"message"`
}

type StockAlertService interface {
  Create(ctx context.Context, sessionID, productID uuid.UUID, alertType string, threshold *float64) (*types.StockAlert, error)
  List(ctx context.Context, sessionID uuid.UUID) ([]*types.StockAlert, error)
  Deactivate(ctx context.Context, sessionID, alertID uuid.UUID) (*types.StockAlert, error)
  // Sweep samples every active alert once and fires the lucky ones,
  // stamping TriggeredAt. Fired alerts stay active and can fire again;
  // only Deactivate retires them.
  Sweep(ctx context.Context) ([]StockNotification, error)
  // Start runs periodic sweeps until the context is cancelled.
  Start(ctx context.Context) error
}

type stockAlertService struct {
  db            *gorm.DB
  log           *logger.Logger
  alertRepo     repos.StockAlertRepo
  productRepo   repos.ProductRepo
  sweepInterval time.Duration
  now           func() time.Time
  sample        func() float64
}

func NewStockAlertService(db *gorm.DB, baseLog *logger.Logger, alertRepo repos.StockAlertRepo, productRepo repos.ProductRepo) StockAlertService {
  log := baseLog.With("service", "StockAlertService")
  rng := rand.New(rand.NewSource(time.Now().UnixNano()))
  intervalSeconds := utils.GetEnvAsInt("STOCK_SWEEP_INTERVAL_SECONDS", 300, baseLog)
  return &stockAlertService{
    db:            db,
    log:           log,
    alertRepo:     alertRepo,
    productRepo:   productRepo,
    sweepInterval: time.Duration(intervalSeconds) * time.Second,
    now:           time.Now,
    sample:        rng.Float64,
  }
}

func (sa *stockAlertService) Create(ctx context.Context, sessionID, productID uuid.UUID, alertType string, threshold *float64) (*types.StockAlert, error) {
  if !types.ValidStockAlertType(alertType) {
    return nil, fmt.Errorf("invalid alert type %q", alertType)
  }

  product, err := sa.productRepo.GetByID(ctx, nil, productID)
  if err != nil {
    return nil, fmt.Errorf("load product: %w", err)
  }

  alert := &types.StockAlert{
    ID:          uuid.New(),
    SessionID:   sessionID,
    ProductID:   product.ID,
    ProductName: product.Name,
    AlertType:   alertType,
    Threshold:   threshold,
    IsActive:    true,
    CreatedAt:   sa.now(),
  }
  if _, err := sa.alertRepo.Create(ctx, nil, alert); err != nil {
    return nil, fmt.Errorf("create alert: %w", err)
  }
  sa.log.Info("Created stock alert", "session_id", sessionID, "product_id", productID, "type", alertType)
  return alert, nil
}

func (sa *stockAlertService) List(ctx context.Context, sessionID uuid.UUID) ([]*types.StockAlert, error) {
  return sa.alertRepo.ListBySession(ctx, nil, sessionID)
}

func (sa *stockAlertService) Deactivate(ctx context.Context, sessionID, alertID uuid.UUID) (*types.StockAlert, error) {
  alerts, err := sa.alertRepo.ListBySession(ctx, nil, sessionID)
  if err != nil {
    return nil, err
  }
  for _, alert := range alerts {
    if alert.ID == alertID {
      alert.IsActive = false
      if err := sa.alertRepo.Save(ctx, nil, alert); err != nil {
        return nil, err
      }
      return alert, nil
    }
  }
  return nil, fmt.Errorf("alert %s not found", alertID)
}

func (sa *stockAlertService) Sweep(ctx context.Context) ([]StockNotification, error) {
  alerts, err := sa.alertRepo.ListActive(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("list active alerts: %w", err)
  }

  var fired []StockNotification
  for _, alert := range alerts {
    bar, ok := sweepThresholds[alert.AlertType]
    if !ok {
      continue
    }
    if sa.sample() <= bar {
      continue
    }

    triggeredAt := sa.now()
    alert.TriggeredAt = &triggeredAt
    if err := sa.alertRepo.Save(ctx, nil, alert); err != nil {
      return nil, fmt.Errorf("save triggered alert: %w", err)
    }
    fired = append(fired, StockNotification{
      Alert:   alert,
      Message: notificationMessage(alert),
    })
  }

  if len(fired) > 0 {
    sa.log.Info("Stock alert sweep fired notifications", "count", len(fired))
  }
  return fired, nil
}

func (sa *stockAlertService) Start(ctx context.Context) error {
  g, ctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    ticker := time.NewTicker(sa.sweepInterval)
    defer ticker.Stop()
    for {
      select {
      case <-ctx.Done():
        return ctx.Err()
      case <-ticker.C:
        if _, err := sa.Sweep(ctx); err != nil {
          sa.log.Error("Stock alert sweep failed", "error", err)
        }
      }
    }
  })
  return g.Wait()
}

func notificationMessage(alert *types.StockAlert) string {
  switch alert.AlertType {
  case types.StockAlertBackInStock:
    return fmt.Sprintf("%s is back in stock!", alert.ProductName)
  case types.StockAlertLowStock:
    return fmt.Sprintf("Only a few units of %s left, grab it soon.", alert.ProductName)
  case types.StockAlertPriceDrop:
    if alert.Threshold != nil {
      return fmt.Sprintf("%s dropped below %s!", alert.ProductName, utils.FormatINR(*alert.Threshold))
    }
    return fmt.Sprintf("The price of %s just dropped!", alert.ProductName)
  default:
    return fmt.Sprintf("There's a new deal on %s.", alert.ProductName)
  }
}
