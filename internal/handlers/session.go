package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type SessionHandler struct {
  log            *logger.Logger
  sessionService services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessionService services.SessionService) *SessionHandler {
  return &SessionHandler{
    log:            log.With("handler", "SessionHandler"),
    sessionService: sessionService,
  }
}

// Create issues a fresh anonymous session token explicitly. Clients may also
// just call any endpoint and pick the token up from the response header.
func (h *SessionHandler) Create(c *gin.Context) {
  token, sessionID, err := h.sessionService.Issue()
  if err != nil {
    h.log.Error("Issue session failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "session_failed", err)
    return
  }
  RespondOK(c, gin.H{"token": token, "session_id": sessionID})
}
