package services

import (
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
)

// SessionService issues and verifies anonymous session tokens. There are no
// accounts; a session is just a signed UUID the browser holds on to.
type SessionService interface {
  Issue() (string, uuid.UUID, error)
  Parse(token string) (uuid.UUID, error)
}

type sessionService struct {
  log    *logger.Logger
  secret []byte
  ttl    time.Duration
  now    func() time.Time
}

func NewSessionService(baseLog *logger.Logger, secret string, ttl time.Duration) SessionService {
  return &sessionService{
    log:    baseLog.With("service", "SessionService"),
    secret: []byte(secret),
    ttl:    ttl,
    now:    time.Now,
  }
}

func (ss *sessionService) Issue() (string, uuid.UUID, error) {
  sessionID := uuid.New()
  now := ss.now()
  claims := jwt.RegisteredClaims{
    Subject:   sessionID.String(),
    IssuedAt:  jwt.NewNumericDate(now),
    ExpiresAt: jwt.NewNumericDate(now.Add(ss.ttl)),
  }
  token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ss.secret)
  if err != nil {
    return "", uuid.Nil, fmt.Errorf("sign session token: %w", err)
  }
  ss.log.Debug("Issued session token", "session_id", sessionID)
  return token, sessionID, nil
}

func (ss *sessionService) Parse(token string) (uuid.UUID, error) {
  parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return ss.secret, nil
  }, jwt.WithTimeFunc(func() time.Time { return ss.now() }))
  if err != nil {
    return uuid.Nil, fmt.Errorf("parse session token: %w", err)
  }

  claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
  if !ok || !parsed.Valid {
    return uuid.Nil, fmt.Errorf("invalid session token")
  }
  sessionID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return uuid.Nil, fmt.Errorf("invalid session subject: %w", err)
  }
  return sessionID, nil
}
