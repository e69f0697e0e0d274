package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  ChatSenderUser      = "user"
  ChatSenderAssistant = "ai"
)

const (
  ChatMessageText           = "text"
  ChatMessageProduct        = "product"
  ChatMessageRecommendation = "recommendation"
  ChatMessageComparison     = "comparison"
)

type ChatMetadata struct {
  Products    []Product `json:"products,omitempty"`
  Suggestions []string  `json:"suggestions,omitempty"`
  Confidence  float64   `json:"confidence,omitempty"`
  ActionType  string    `json:"action_type,omitempty"`
}

// ChatMessage is the reply produced for one user message. Each message is
// classified and answered independently; only shallow context (recent
// searches, last intent) carries forward.
type ChatMessage struct {
  ID        uuid.UUID     `json:"id"`
  Text      string        `json:"text"`
  Sender    string        `json:"sender"`
  Timestamp time.Time     `json:"timestamp"`
  Type      string        `json:"type"`
  Metadata  *ChatMetadata `json:"metadata,omitempty"`
}
