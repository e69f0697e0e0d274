package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/shopmuse/shopmuse-backend/internal/types"
)

func newBudgetService(env *testEnv) BudgetService {
  return NewBudgetService(env.db, env.log, env.budgets)
}

func TestCreateBudgetAppliesDefaults(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{})
  require.NoError(t, err)

  assert.Equal(t, "My Budget Plan", plan.Name)
  assert.Equal(t, float64(1000), plan.TotalBudget)
  assert.Equal(t, float64(1000), plan.RemainingAmount)
  assert.Equal(t, float64(0), plan.SpentAmount)
  assert.Len(t, []types.BudgetCategory(plan.Categories), 6)
  assert.Empty(t, []types.BudgetAlert(plan.Alerts))
  assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), plan.EndDate, time.Minute)
}

func TestCreateBudgetHonorsOverrides(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)

  end := time.Now().AddDate(0, 2, 0)
  plan, err := svc.Create(context.Background(), uuid.New(), CreateBudgetInput{
    Name:        "Festive Shopping",
    TotalBudget: 25000,
    EndDate:     &end,
    Categories: []types.BudgetCategory{
      {Name: "Gifts", AllocatedAmount: 20000, Percentage: 80, Priority: "high"},
      {Name: "Decor", AllocatedAmount: 5000, Percentage: 20, Priority: "low"},
    },
  })
  require.NoError(t, err)

  assert.Equal(t, "Festive Shopping", plan.Name)
  assert.Equal(t, float64(25000), plan.TotalBudget)
  assert.Equal(t, end, plan.EndDate)
  assert.Len(t, []types.BudgetCategory(plan.Categories), 2)
}

func TestRecordSpendingUpdatesRemainingAndCategory(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{})
  require.NoError(t, err)

  updated, err := svc.RecordSpending(context.Background(), sessionID, plan.ID, "Clothing", 120)
  require.NoError(t, err)

  assert.Equal(t, float64(120), updated.SpentAmount)
  assert.Equal(t, float64(880), updated.RemainingAmount)
  for _, c := range updated.Categories {
    if c.Name == "Clothing" {
      assert.Equal(t, float64(120), c.SpentAmount)
    } else {
      assert.Equal(t, float64(0), c.SpentAmount)
    }
  }
  assert.Empty(t, []types.BudgetAlert(updated.Alerts))
}

func TestRecordSpendingRejectsBadInput(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{})
  require.NoError(t, err)

  _, err = svc.RecordSpending(context.Background(), sessionID, plan.ID, "Clothing", -5)
  require.Error(t, err)

  _, err = svc.RecordSpending(context.Background(), sessionID, plan.ID, "Yachts", 100)
  require.Error(t, err)

  // Plans are scoped per session.
  _, err = svc.RecordSpending(context.Background(), uuid.New(), plan.ID, "Clothing", 100)
  require.Error(t, err)
}

func TestHeavyCategorySpendRaisesBothAlerts(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{})
  require.NoError(t, err)

  // 850 on a 300 allocation inside a 1000 total: category overspend plus
  // overall near-limit.
  updated, err := svc.RecordSpending(context.Background(), sessionID, plan.ID, "Electronics", 850)
  require.NoError(t, err)

  alerts := []types.BudgetAlert(updated.Alerts)
  require.Len(t, alerts, 2)

  var overall, category *types.BudgetAlert
  for i := range alerts {
    if alerts[i].Category == "" {
      overall = &alerts[i]
    } else {
      category = &alerts[i]
    }
  }
  require.NotNil(t, overall)
  require.NotNil(t, category)

  assert.Equal(t, types.BudgetAlertNearLimit, overall.Type)
  assert.Equal(t, types.AlertSeverityWarning, overall.Severity)

  assert.Equal(t, types.BudgetAlertOverspend, category.Type)
  assert.Equal(t, types.AlertSeverityError, category.Severity)
  assert.Equal(t, "Electronics", category.Category)
}

func TestAlertsAreRegeneratedNotAccumulated(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{})
  require.NoError(t, err)

  _, err = svc.RecordSpending(context.Background(), sessionID, plan.ID, "Electronics", 290)
  require.NoError(t, err)
  updated, err := svc.RecordSpending(context.Background(), sessionID, plan.ID, "Electronics", 20)
  require.NoError(t, err)

  // Second update replaces the first near-limit alert with one overspend.
  alerts := []types.BudgetAlert(updated.Alerts)
  require.Len(t, alerts, 1)
  assert.Equal(t, types.BudgetAlertOverspend, alerts[0].Type)
}

func TestOverallOverspendAlert(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{
    TotalBudget: 500,
    Categories: []types.BudgetCategory{
      {Name: "Everything", AllocatedAmount: 500, Percentage: 100, Priority: "high"},
    },
  })
  require.NoError(t, err)

  updated, err := svc.RecordSpending(context.Background(), sessionID, plan.ID, "Everything", 600)
  require.NoError(t, err)

  assert.Equal(t, float64(-100), updated.RemainingAmount)
  alerts := []types.BudgetAlert(updated.Alerts)
  require.Len(t, alerts, 2)
  for _, a := range alerts {
    assert.Equal(t, types.BudgetAlertOverspend, a.Type)
    assert.Equal(t, types.AlertSeverityError, a.Severity)
  }
}

func TestAffordability(t *testing.T) {
  env := newTestEnv(t)
  svc := newBudgetService(env)
  sessionID := uuid.New()

  ok, msg, err := svc.Affordability(context.Background(), sessionID, 99999)
  require.NoError(t, err)
  assert.True(t, ok)
  assert.NotEmpty(t, msg)

  plan, err := svc.Create(context.Background(), sessionID, CreateBudgetInput{})
  require.NoError(t, err)
  _, err = svc.RecordSpending(context.Background(), sessionID, plan.ID, "Other", 40)
  require.NoError(t, err)

  ok, _, err = svc.Affordability(context.Background(), sessionID, 960)
  require.NoError(t, err)
  assert.True(t, ok)

  ok, msg, err = svc.Affordability(context.Background(), sessionID, 961)
  require.NoError(t, err)
  assert.False(t, ok)
  assert.Contains(t, msg, "exceed")
}
