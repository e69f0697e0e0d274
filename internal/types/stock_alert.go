package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  StockAlertBackInStock = "back_in_stock"
  StockAlertLowStock    = "low_stock"
  StockAlertPriceDrop   = "price_drop"
  StockAlertDeal        = "deal_alert"
)

// StockAlert is a user-created watch on a product. Alerts never expire on
// their own; TriggeredAt is stamped when a sweep fires them.
type StockAlert struct {
  ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  SessionID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
  ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
  ProductName string     `gorm:"column:product_name" json:"product_name"`
  AlertType   string     `gorm:"not null;column:alert_type" json:"alert_type"`
  Threshold   *float64   `gorm:"column:threshold" json:"threshold,omitempty"`
  IsActive    bool       `gorm:"column:is_active" json:"is_active"`
  CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
  TriggeredAt *time.Time `gorm:"column:triggered_at" json:"triggered_at,omitempty"`
}

func (StockAlert) TableName() string { return "stock_alert" }

func ValidStockAlertType(t string) bool {
  switch t {
  case StockAlertBackInStock, StockAlertLowStock, StockAlertPriceDrop, StockAlertDeal:
    return true
  }
  return false
}
