package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type ProductRepo interface {
  List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
  GetByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
  ListByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Product, error)
  ListUnderPrice(ctx context.Context, tx *gorm.DB, maxPrice float64) ([]*types.Product, error)
}

type productRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
  repoLog := baseLog.With("repo", "ProductRepo")
  return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Product
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Product
  if err := transaction.WithContext(ctx).
    Where("id = ?", productID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Product
  if len(productIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", productIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *productRepo) ListByCategory(ctx context.Context, tx *gorm.DB, category string) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Product
  if err := transaction.WithContext(ctx).
    Where("category = ?", category).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *productRepo) ListUnderPrice(ctx context.Context, tx *gorm.DB, maxPrice float64) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Product
  if err := transaction.WithContext(ctx).
    Where("price <= ?", maxPrice).
    Order("price ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
