package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type ProfileRepo interface {
  Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error)
  GetBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.UserProfile, error)
  // GetOrCreateBySession returns the existing profile for the session or
  // creates the default one on first visit.
  GetOrCreateBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.UserProfile, error)
  Save(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error
}

type profileRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
  repoLog := baseLog.With("repo", "ProfileRepo")
  return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
    return nil, err
  }
  return profile, nil
}

func (pr *profileRepo) GetBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.UserProfile, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.UserProfile
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *profileRepo) GetOrCreateBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.UserProfile, error) {
  profile, err := pr.GetBySession(ctx, tx, sessionID)
  if err == nil {
    return profile, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, err
  }

  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  fresh := types.NewUserProfile(sessionID, transaction.NowFunc())
  if err := transaction.WithContext(ctx).Create(fresh).Error; err != nil {
    return nil, err
  }
  pr.log.Debug("Created profile for new session", "session_id", sessionID)
  return fresh, nil
}

func (pr *profileRepo) Save(ctx context.Context, tx *gorm.DB, profile *types.UserProfile) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).Save(profile).Error
}
