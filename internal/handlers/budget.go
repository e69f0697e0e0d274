package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type BudgetHandler struct {
  log           *logger.Logger
  budgetService services.BudgetService
}

func NewBudgetHandler(log *logger.Logger, budgetService services.BudgetService) *BudgetHandler {
  return &BudgetHandler{
    log:           log.With("handler", "BudgetHandler"),
    budgetService: budgetService,
  }
}

func (h *BudgetHandler) Create(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var input services.CreateBudgetInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  plan, err := h.budgetService.Create(c.Request.Context(), sessionID, input)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "create_budget_failed", err)
    return
  }
  RespondOK(c, gin.H{"budget": plan})
}

func (h *BudgetHandler) List(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  plans, err := h.budgetService.List(c.Request.Context(), sessionID)
  if err != nil {
    h.log.Error("List budgets failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "list_budgets_failed", err)
    return
  }
  RespondOK(c, gin.H{"budgets": plans})
}

func (h *BudgetHandler) Get(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }
  planID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_budget_id", err)
    return
  }

  plan, err := h.budgetService.Get(c.Request.Context(), sessionID, planID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "budget_not_found", err)
    return
  }
  RespondOK(c, gin.H{"budget": plan})
}

type spendRequest struct {
  Category string  `json:"category" binding:"required"`
  Amount   float64 `json:"amount" binding:"required"`
}

func (h *BudgetHandler) RecordSpending(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }
  planID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_budget_id", err)
    return
  }

  var req spendRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  plan, err := h.budgetService.RecordSpending(c.Request.Context(), sessionID, planID, req.Category, req.Amount)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "record_spending_failed", err)
    return
  }
  RespondOK(c, gin.H{"budget": plan})
}

func (h *BudgetHandler) Affordability(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }
  price, err := strconv.ParseFloat(c.Query("price"), 64)
  if err != nil || price <= 0 {
    RespondError(c, http.StatusBadRequest, "invalid_price", err)
    return
  }

  affordable, message, err := h.budgetService.Affordability(c.Request.Context(), sessionID, price)
  if err != nil {
    h.log.Error("Affordability check failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "affordability_failed", err)
    return
  }
  RespondOK(c, gin.H{"affordable": affordable, "message": message})
}
