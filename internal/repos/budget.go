package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type BudgetRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plan *types.BudgetPlan) (*types.BudgetPlan, error)
  GetByID(ctx context.Context, tx *gorm.DB, sessionID, planID uuid.UUID) (*types.BudgetPlan, error)
  ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.BudgetPlan, error)
  Save(ctx context.Context, tx *gorm.DB, plan *types.BudgetPlan) error
}

type budgetRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBudgetRepo(db *gorm.DB, baseLog *logger.Logger) BudgetRepo {
  repoLog := baseLog.With("repo", "BudgetRepo")
  return &budgetRepo{db: db, log: repoLog}
}

func (br *budgetRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.BudgetPlan) (*types.BudgetPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
    return nil, err
  }
  return plan, nil
}

func (br *budgetRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID, planID uuid.UUID) (*types.BudgetPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var result types.BudgetPlan
  if err := transaction.WithContext(ctx).
    Where("id = ? AND session_id = ?", planID, sessionID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (br *budgetRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.BudgetPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }

  var results []*types.BudgetPlan
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *budgetRepo) Save(ctx context.Context, tx *gorm.DB, plan *types.BudgetPlan) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).Save(plan).Error
}
