package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type StockAlertRepo interface {
  Create(ctx context.Context, tx *gorm.DB, alert *types.StockAlert) (*types.StockAlert, error)
  ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.StockAlert, error)
  ListActive(ctx context.Context, tx *gorm.DB) ([]*types.StockAlert, error)
  Save(ctx context.Context, tx *gorm.DB, alert *types.StockAlert) error
}

type stockAlertRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewStockAlertRepo(db *gorm.DB, baseLog *logger.Logger) StockAlertRepo {
  repoLog := baseLog.With("repo", "StockAlertRepo")
  return &stockAlertRepo{db: db, log: repoLog}
}

func (sr *stockAlertRepo) Create(ctx context.Context, tx *gorm.DB, alert *types.StockAlert) (*types.StockAlert, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if err := transaction.WithContext(ctx).Create(alert).Error; err != nil {
    return nil, err
  }
  return alert, nil
}

func (sr *stockAlertRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.StockAlert, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []*types.StockAlert
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *stockAlertRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.StockAlert, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []*types.StockAlert
  if err := transaction.WithContext(ctx).
    Where("is_active = ?", true).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *stockAlertRepo) Save(ctx context.Context, tx *gorm.DB, alert *types.StockAlert) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  return transaction.WithContext(ctx).Save(alert).Error
}
