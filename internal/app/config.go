package app

import (
  "strings"
  "time"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

type Config struct {
  JWTSecretKey string
  SessionTTL   time.Duration
  AllowOrigins []string
  Port         string
}

func LoadConfig(log *logger.Logger) Config {
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  sessionTTLSeconds := utils.GetEnvAsInt("SESSION_TTL", 86400*30, log)
  origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
  port := utils.GetEnv("PORT", "8080", log)

  return Config{
    JWTSecretKey: jwtSecretKey,
    SessionTTL:   time.Duration(sessionTTLSeconds) * time.Second,
    AllowOrigins: strings.Split(origins, ","),
    Port:         port,
  }
}
