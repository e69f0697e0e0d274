package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

const (
  defaultBudgetName  = "My Budget Plan"
  defaultBudgetTotal = 1000
  defaultBudgetDays  = 30

  overallNearLimitRatio  = 0.8
  categoryNearLimitRatio = 0.9
)

// CreateBudgetInput carries optional overrides; zero values fall back to the
// defaults (name "My Budget Plan", total 1000, 30-day window, standard
// category split).
type CreateBudgetInput struct {
  Name        string                 `json:"name"`
  TotalBudget float64                `json:"total_budget"`
  EndDate     *time.Time             `json:"end_date"`
  Categories  []types.BudgetCategory `json:"categories"`
}

type BudgetService interface {
  Create(ctx context.Context, sessionID uuid.UUID, input CreateBudgetInput) (*types.BudgetPlan, error)
  Get(ctx context.Context, sessionID, planID uuid.UUID) (*types.BudgetPlan, error)
  List(ctx context.Context, sessionID uuid.UUID) ([]*types.BudgetPlan, error)
  // RecordSpending adds a spend to one category, recomputes the remaining
  // amount and regenerates the alert list from the new state.
  RecordSpending(ctx context.Context, sessionID, planID uuid.UUID, category string, amount float64) (*types.BudgetPlan, error)
  // Affordability reports whether a price fits the remaining budget of the
  // session's most recent plan. A session without plans can afford anything.
  Affordability(ctx context.Context, sessionID uuid.UUID, price float64) (bool, string, error)
}

type budgetService struct {
  db         *gorm.DB
  log        *logger.Logger
  budgetRepo repos.BudgetRepo
  now        func() time.Time
}

func NewBudgetService(db *gorm.DB, baseLog *logger.Logger, budgetRepo repos.BudgetRepo) BudgetService {
  return &budgetService{
    db:         db,
    log:        baseLog.With("service", "BudgetService"),
    budgetRepo: budgetRepo,
    now:        time.Now,
  }
}

func (bs *budgetService) Create(ctx context.Context, sessionID uuid.UUID, input CreateBudgetInput) (*types.BudgetPlan, error) {
  if input.TotalBudget < 0 {
    return nil, fmt.Errorf("total budget must not be negative")
  }

  name := input.Name
  if name == "" {
    name = defaultBudgetName
  }
  total := input.TotalBudget
  if total == 0 {
    total = defaultBudgetTotal
  }
  endDate := bs.now().AddDate(0, 0, defaultBudgetDays)
  if input.EndDate != nil {
    endDate = *input.EndDate
  }
  categories := input.Categories
  if len(categories) == 0 {
    categories = types.DefaultBudgetCategories()
  }

  plan := &types.BudgetPlan{
    ID:              uuid.New(),
    SessionID:       sessionID,
    Name:            name,
    TotalBudget:     total,
    SpentAmount:     0,
    RemainingAmount: total,
    Categories:      datatypes.NewJSONSlice(categories),
    Alerts:          datatypes.NewJSONSlice([]types.BudgetAlert{}),
    CreatedAt:       bs.now(),
    EndDate:         endDate,
  }

  if _, err := bs.budgetRepo.Create(ctx, nil, plan); err != nil {
    return nil, fmt.Errorf("create budget plan: %w", err)
  }
  bs.log.Info("Created budget plan", "session_id", sessionID, "plan_id", plan.ID, "total", total)
  return plan, nil
}

func (bs *budgetService) Get(ctx context.Context, sessionID, planID uuid.UUID) (*types.BudgetPlan, error) {
  return bs.budgetRepo.GetByID(ctx, nil, sessionID, planID)
}

func (bs *budgetService) List(ctx context.Context, sessionID uuid.UUID) ([]*types.BudgetPlan, error) {
  return bs.budgetRepo.ListBySession(ctx, nil, sessionID)
}

func (bs *budgetService) RecordSpending(ctx context.Context, sessionID, planID uuid.UUID, category string, amount float64) (*types.BudgetPlan, error) {
  if amount <= 0 {
    return nil, fmt.Errorf("spend amount must be positive")
  }

  plan, err := bs.budgetRepo.GetByID(ctx, nil, sessionID, planID)
  if err != nil {
    return nil, err
  }

  categories := []types.BudgetCategory(plan.Categories)
  matched := false
  for i := range categories {
    if categories[i].Name == category {
      categories[i].SpentAmount += amount
      matched = true
      break
    }
  }
  if !matched {
    return nil, fmt.Errorf("category %q not in budget plan", category)
  }

  plan.SpentAmount += amount
  plan.RemainingAmount = plan.TotalBudget - plan.SpentAmount
  plan.Categories = datatypes.NewJSONSlice(categories)
  plan.Alerts = datatypes.NewJSONSlice(buildAlerts(plan, categories, bs.now()))

  if err := bs.budgetRepo.Save(ctx, nil, plan); err != nil {
    return nil, fmt.Errorf("save budget plan: %w", err)
  }
  return plan, nil
}

func (bs *budgetService) Affordability(ctx context.Context, sessionID uuid.UUID, price float64) (bool, string, error) {
  plans, err := bs.budgetRepo.ListBySession(ctx, nil, sessionID)
  if err != nil {
    return false, "", err
  }
  if len(plans) == 0 {
    return true, "No budget plan set, spend mindfully.", nil
  }

  plan := plans[len(plans)-1]
  if price <= plan.RemainingAmount {
    return true, fmt.Sprintf("Fits your budget: %s of %s remaining.", utils.FormatINR(plan.RemainingAmount), utils.FormatINR(plan.TotalBudget)), nil
  }
  over := price - plan.RemainingAmount
  return false, fmt.Sprintf("This would exceed your remaining budget by %s.", utils.FormatINR(over)), nil
}

// buildAlerts derives the full alert set from current plan state. Overall
// alerts fire at 100% (overspend, error) and 80% (nearLimit, warning);
// category alerts at 100% and 90%.
func buildAlerts(plan *types.BudgetPlan, categories []types.BudgetCategory, now time.Time) []types.BudgetAlert {
  alerts := []types.BudgetAlert{}

  if plan.TotalBudget > 0 {
    ratio := plan.SpentAmount / plan.TotalBudget
    switch {
    case ratio >= 1:
      alerts = append(alerts, types.BudgetAlert{
        Type:      types.BudgetAlertOverspend,
        Message:   fmt.Sprintf("You've spent %s, exceeding your total budget of %s.", utils.FormatINR(plan.SpentAmount), utils.FormatINR(plan.TotalBudget)),
        Severity:  types.AlertSeverityError,
        Timestamp: now,
      })
    case ratio >= overallNearLimitRatio:
      alerts = append(alerts, types.BudgetAlert{
        Type:      types.BudgetAlertNearLimit,
        Message:   fmt.Sprintf("You've used %.0f%% of your total budget.", ratio*100),
        Severity:  types.AlertSeverityWarning,
        Timestamp: now,
      })
    }
  }

  for _, c := range categories {
    if c.AllocatedAmount <= 0 {
      continue
    }
    ratio := c.SpentAmount / c.AllocatedAmount
    switch {
    case ratio >= 1:
      alerts = append(alerts, types.BudgetAlert{
        Type:      types.BudgetAlertOverspend,
        Message:   fmt.Sprintf("%s spending (%s) exceeded its %s allocation.", c.Name, utils.FormatINR(c.SpentAmount), utils.FormatINR(c.AllocatedAmount)),
        Severity:  types.AlertSeverityError,
        Category:  c.Name,
        Timestamp: now,
      })
    case ratio >= categoryNearLimitRatio:
      alerts = append(alerts, types.BudgetAlert{
        Type:      types.BudgetAlertNearLimit,
        Message:   fmt.Sprintf("%s is at %.0f%% of its allocation.", c.Name, ratio*100),
        Severity:  types.AlertSeverityWarning,
        Category:  c.Name,
        Timestamp: now,
      })
    }
  }

  return alerts
}
