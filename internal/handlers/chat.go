package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/middleware"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type ChatHandler struct {
  log         *logger.Logger
  chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
  return &ChatHandler{
    log:         log.With("handler", "ChatHandler"),
    chatService: chatService,
  }
}

type chatRequest struct {
  Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Send(c *gin.Context) {
  sessionID, ok := middleware.SessionID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "no_session", nil)
    return
  }

  var req chatRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  reply, err := h.chatService.HandleMessage(c.Request.Context(), sessionID, req.Message)
  if err != nil {
    h.log.Error("Chat message failed", "error", err, "session_id", sessionID)
    RespondError(c, http.StatusInternalServerError, "chat_failed", err)
    return
  }
  RespondOK(c, gin.H{"message": reply})
}
