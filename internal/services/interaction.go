package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type InteractionService interface {
  // Record persists the interaction and feeds views and likes into the
  // personalization profile.
  Record(ctx context.Context, sessionID, productID uuid.UUID, kind string) (*types.UserInteraction, error)
  List(ctx context.Context, sessionID uuid.UUID) ([]*types.UserInteraction, error)
}

type interactionService struct {
  db              *gorm.DB
  log             *logger.Logger
  interactionRepo repos.InteractionRepo
  productRepo     repos.ProductRepo
  personalization PersonalizationService
}

func NewInteractionService(db *gorm.DB, baseLog *logger.Logger, interactionRepo repos.InteractionRepo, productRepo repos.ProductRepo, personalization PersonalizationService) InteractionService {
  return &interactionService{
    db:              db,
    log:             baseLog.With("service", "InteractionService"),
    interactionRepo: interactionRepo,
    productRepo:     productRepo,
    personalization: personalization,
  }
}

func (is *interactionService) Record(ctx context.Context, sessionID, productID uuid.UUID, kind string) (*types.UserInteraction, error) {
  if !types.ValidInteractionKind(kind) {
    return nil, fmt.Errorf("invalid interaction kind %q", kind)
  }

  product, err := is.productRepo.GetByID(ctx, nil, productID)
  if err != nil {
    return nil, fmt.Errorf("load product: %w", err)
  }

  interaction, err := is.interactionRepo.Create(ctx, nil, &types.UserInteraction{
    ID:        uuid.New(),
    SessionID: sessionID,
    ProductID: product.ID,
    Kind:      kind,
  })
  if err != nil {
    return nil, fmt.Errorf("create interaction: %w", err)
  }

  if kind == types.InteractionView || kind == types.InteractionLike {
    if _, err := is.personalization.TrackInteraction(ctx, sessionID, TrackEvent{Type: TrackProductView, Product: product}); err != nil {
      is.log.Warn("Failed to fold interaction into profile", "session_id", sessionID, "error", err)
    }
  }
  return interaction, nil
}

func (is *interactionService) List(ctx context.Context, sessionID uuid.UUID) ([]*types.UserInteraction, error) {
  return is.interactionRepo.ListBySession(ctx, nil, sessionID)
}
