package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type InteractionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, interaction *types.UserInteraction) (*types.UserInteraction, error)
  ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.UserInteraction, error)
  ListBySessionAndKinds(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, kinds []string) ([]*types.UserInteraction, error)
  // CountByProduct returns interaction counts across all sessions, keyed by
  // product.
  CountByProduct(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error)
}

type interactionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
  repoLog := baseLog.With("repo", "InteractionRepo")
  return &interactionRepo{db: db, log: repoLog}
}

func (ir *interactionRepo) Create(ctx context.Context, tx *gorm.DB, interaction *types.UserInteraction) (*types.UserInteraction, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  if err := transaction.WithContext(ctx).Create(interaction).Error; err != nil {
    return nil, err
  }
  return interaction, nil
}

func (ir *interactionRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.UserInteraction, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.UserInteraction
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *interactionRepo) ListBySessionAndKinds(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, kinds []string) ([]*types.UserInteraction, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.UserInteraction
  if len(kinds) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("session_id = ? AND kind IN ?", sessionID, kinds).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *interactionRepo) CountByProduct(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var rows []struct {
    ProductID uuid.UUID
    Total     int64
  }
  if err := transaction.WithContext(ctx).
    Model(&types.UserInteraction{}).
    Select("product_id, COUNT(*) as total").
    Group("product_id").
    Scan(&rows).Error; err != nil {
    return nil, err
  }

  counts := make(map[uuid.UUID]int64, len(rows))
  for _, row := range rows {
    counts[row.ProductID] = row.Total
  }
  return counts, nil
}
