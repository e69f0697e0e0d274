package middleware

import (
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

const sessionKey = "session_id"

// SessionTokenHeader carries a freshly issued token back to the client when
// the request arrived without a valid one.
const SessionTokenHeader = "X-Session-Token"

type SessionMiddleware struct {
  log            *logger.Logger
  sessionService services.SessionService
}

func NewSessionMiddleware(log *logger.Logger, sessionService services.SessionService) *SessionMiddleware {
  middlewareLogger := log.With("middleware", "SessionMiddleware")
  return &SessionMiddleware{log: middlewareLogger, sessionService: sessionService}
}

// EnsureSession resolves the anonymous session for the request. A valid
// bearer token keeps its session; anything else gets a brand-new one, with
// the replacement token returned in the response header. Requests are never
// rejected: there is nothing to be unauthorized against.
func (sm *SessionMiddleware) EnsureSession() gin.HandlerFunc {
  return func(c *gin.Context) {
    if token := extractToken(c); token != "" {
      if sessionID, err := sm.sessionService.Parse(token); err == nil {
        c.Set(sessionKey, sessionID)
        c.Next()
        return
      } else {
        sm.log.Debug("Session token rejected, issuing a new session", "error", err)
      }
    }

    token, sessionID, err := sm.sessionService.Issue()
    if err != nil {
      sm.log.Error("Failed to issue session token", "error", err)
      c.AbortWithStatusJSON(500, gin.H{"error": "session unavailable"})
      return
    }
    c.Header(SessionTokenHeader, token)
    c.Set(sessionKey, sessionID)
    c.Next()
  }
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return c.Query("token")
}

// SessionID returns the session resolved by EnsureSession.
func SessionID(c *gin.Context) (uuid.UUID, bool) {
  v, ok := c.Get(sessionKey)
  if !ok {
    return uuid.Nil, false
  }
  sessionID, ok := v.(uuid.UUID)
  return sessionID, ok
}
