package app

import (
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
)

type Repos struct {
  Product     repos.ProductRepo
  Interaction repos.InteractionRepo
  Profile     repos.ProfileRepo
  Budget      repos.BudgetRepo
  StockAlert  repos.StockAlertRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
  log.Info("Wiring repos...")
  return Repos{
    Product:     repos.NewProductRepo(db, log),
    Interaction: repos.NewInteractionRepo(db, log),
    Profile:     repos.NewProfileRepo(db, log),
    Budget:      repos.NewBudgetRepo(db, log),
    StockAlert:  repos.NewStockAlertRepo(db, log),
  }
}
