package app

import (
  "context"
  "fmt"
  "os"

  "github.com/gin-gonic/gin"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/catalog"
  "github.com/shopmuse/shopmuse-backend/internal/db"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
)

type App struct {
  Log      *logger.Logger
  DB       *gorm.DB
  Router   *gin.Engine
  Cfg      Config
  Repos    Repos
  Services Services
  cancel   context.CancelFunc
}

func New() (*App, error) {
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    return nil, fmt.Errorf("init logger: %w", err)
  }

  log.Info("Loading environment variables...")
  cfg := LoadConfig(log)

  dbService, err := db.NewDatabaseService(log)
  if err != nil {
    log.Sync()
    return nil, fmt.Errorf("init database: %w", err)
  }
  if err := dbService.AutoMigrateAll(); err != nil {
    log.Sync()
    return nil, fmt.Errorf("database automigrate: %w", err)
  }
  theDB := dbService.DB()

  if err := catalog.Seed(theDB, log); err != nil {
    log.Sync()
    return nil, fmt.Errorf("seed catalog: %w", err)
  }

  reposet := wireRepos(theDB, log)

  serviceset, err := wireServices(theDB, log, cfg, reposet)
  if err != nil {
    log.Sync()
    return nil, err
  }

  handlerset := wireHandlers(log, reposet, serviceset)
  middlewareset := wireMiddleware(log, serviceset)
  router := wireRouter(cfg, handlerset, middlewareset)

  return &App{
    Log:      log,
    DB:       theDB,
    Router:   router,
    Cfg:      cfg,
    Repos:    reposet,
    Services: serviceset,
  }, nil
}

// Start launches the background stock alert sweeper.
func (a *App) Start() {
  if a == nil || a.cancel != nil {
    return
  }
  ctx, cancel := context.WithCancel(context.Background())
  a.cancel = cancel

  go func() {
    if err := a.Services.StockAlert.Start(ctx); err != nil && ctx.Err() == nil {
      a.Log.Error("Stock alert worker stopped", "error", err)
    }
  }()
}

func (a *App) Run(addr string) error {
  if a == nil || a.Router == nil {
    return fmt.Errorf("app not initialized")
  }
  return a.Router.Run(addr)
}

func (a *App) Close() {
  if a == nil {
    return
  }
  if a.cancel != nil {
    a.cancel()
    a.cancel = nil
  }
  if a.Log != nil {
    a.Log.Sync()
  }
}
