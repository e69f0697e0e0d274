package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  BudgetAlertOverspend  = "overspend"
  BudgetAlertNearLimit  = "nearLimit"
  BudgetAlertGoodDeal   = "goodDeal"
  BudgetAlertBudgetGoal = "budgetGoal"
)

const (
  AlertSeverityInfo    = "info"
  AlertSeverityWarning = "warning"
  AlertSeverityError   = "error"
)

type BudgetCategory struct {
  Name            string  `json:"name"`
  AllocatedAmount float64 `json:"allocated_amount"`
  SpentAmount     float64 `json:"spent_amount"`
  Percentage      float64 `json:"percentage"`
  Priority        string  `json:"priority"`
}

type BudgetAlert struct {
  Type      string    `json:"type"`
  Message   string    `json:"message"`
  Severity  string    `json:"severity"`
  Category  string    `json:"category,omitempty"`
  Timestamp time.Time `json:"timestamp"`
}

// BudgetPlan tracks allocated vs. spent amounts per category. RemainingAmount
// is recomputed as TotalBudget - SpentAmount after every spend update, and
// Alerts are regenerated from scratch on every update rather than kept as a
// history.
type BudgetPlan struct {
  ID              uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
  SessionID       uuid.UUID                             `gorm:"type:uuid;not null;index" json:"session_id"`
  Name            string                                `gorm:"not null;column:name" json:"name"`
  TotalBudget     float64                               `gorm:"not null;column:total_budget" json:"total_budget"`
  SpentAmount     float64                               `gorm:"column:spent_amount" json:"spent_amount"`
  RemainingAmount float64                               `gorm:"column:remaining_amount" json:"remaining_amount"`
  Categories      datatypes.JSONSlice[BudgetCategory]   `gorm:"column:categories" json:"categories"`
  Alerts          datatypes.JSONSlice[BudgetAlert]      `gorm:"column:alerts" json:"alerts"`
  CreatedAt       time.Time                             `gorm:"not null" json:"created_at"`
  EndDate         time.Time                             `gorm:"column:end_date" json:"end_date"`
}

func (BudgetPlan) TableName() string { return "budget_plan" }

// DefaultBudgetCategories is the allocation used when a plan is created
// without explicit categories.
func DefaultBudgetCategories() []BudgetCategory {
  return []BudgetCategory{
    {Name: "Electronics", AllocatedAmount: 300, Percentage: 30, Priority: "high"},
    {Name: "Clothing", AllocatedAmount: 200, Percentage: 20, Priority: "medium"},
    {Name: "Home & Garden", AllocatedAmount: 200, Percentage: 20, Priority: "medium"},
    {Name: "Books & Media", AllocatedAmount: 100, Percentage: 10, Priority: "low"},
    {Name: "Sports & Outdoors", AllocatedAmount: 150, Percentage: 15, Priority: "medium"},
    {Name: "Other", AllocatedAmount: 50, Percentage: 5, Priority: "low"},
  }
}
