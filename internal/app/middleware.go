package app

import (
  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
)

type Middleware struct {
  Session *middleware.SessionMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
  log.Info("Wiring middleware...")
  return Middleware{
    Session: middleware.NewSessionMiddleware(log, serviceset.Session),
  }
}
