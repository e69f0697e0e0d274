package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  InteractionView = "view"
  InteractionClick = "click"
  InteractionLike = "like"
)

// UserInteraction is an append-only event row. Rows are never mutated or
// deleted within a session.
type UserInteraction struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
  ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
  Kind      string    `gorm:"not null;column:kind" json:"kind"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserInteraction) TableName() string { return "user_interaction" }

func ValidInteractionKind(kind string) bool {
  switch kind {
  case InteractionView, InteractionClick, InteractionLike:
    return true
  }
  return false
}
