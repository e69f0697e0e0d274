package db

import (
  "fmt"

  "github.com/google/uuid"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

type DatabaseService struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewDatabaseService opens sqlite (the default, file or in-memory) or
// postgres depending on DB_DRIVER.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")

  driver := utils.GetEnv("DB_DRIVER", "sqlite", log)

  var dialector gorm.Dialector
  switch driver {
  case "postgres":
    host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    port := utils.GetEnv("POSTGRES_PORT", "5432", log)
    user := utils.GetEnv("POSTGRES_USER", "postgres", log)
    password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    name := utils.GetEnv("POSTGRES_NAME", "shopmuse", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
    dialector = postgres.Open(dsn)
  case "sqlite":
    path := utils.GetEnv("SQLITE_PATH", "shopmuse.db", log)
    dialector = sqlite.Open(path)
  default:
    return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
  }

  serviceLog.Info("Connecting to database...", "driver", driver)
  gdb, err := gorm.Open(dialector, &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    serviceLog.Error("Failed to connect to database", "error", err)
    return nil, fmt.Errorf("connect database: %w", err)
  }

  return &DatabaseService{db: gdb, log: serviceLog}, nil
}

// NewTestDatabase opens a fresh in-memory sqlite database with all tables
// migrated. The name is unique per call so pooled connections land on the
// same database without bleeding between tests.
func NewTestDatabase() (*gorm.DB, error) {
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
  gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    return nil, err
  }
  if err := migrate(gdb); err != nil {
    return nil, err
  }
  return gdb, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  if err := migrate(s.db); err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func migrate(gdb *gorm.DB) error {
  return gdb.AutoMigrate(
    &types.Product{},
    &types.UserInteraction{},
    &types.UserProfile{},
    &types.BudgetPlan{},
    &types.StockAlert{},
  )
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}
