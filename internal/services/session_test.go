package services

import (
  "testing"
  "time"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
)

func TestSessionTokenRoundTrip(t *testing.T) {
  svc := NewSessionService(logger.NewNop(), "test-secret", time.Hour)

  token, issued, err := svc.Issue()
  require.NoError(t, err)
  require.NotEmpty(t, token)
  require.NotEqual(t, uuid.Nil, issued)

  parsed, err := svc.Parse(token)
  require.NoError(t, err)
  assert.Equal(t, issued, parsed)
}

func TestSessionTokenWrongSecretRejected(t *testing.T) {
  issuer := NewSessionService(logger.NewNop(), "secret-a", time.Hour)
  verifier := NewSessionService(logger.NewNop(), "secret-b", time.Hour)

  token, _, err := issuer.Issue()
  require.NoError(t, err)

  _, err = verifier.Parse(token)
  require.Error(t, err)
}

func TestSessionTokenExpires(t *testing.T) {
  svc := NewSessionService(logger.NewNop(), "test-secret", time.Hour).(*sessionService)

  token, _, err := svc.Issue()
  require.NoError(t, err)

  svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
  _, err = svc.Parse(token)
  require.Error(t, err)
}

func TestSessionTokenGarbageRejected(t *testing.T) {
  svc := NewSessionService(logger.NewNop(), "test-secret", time.Hour)

  _, err := svc.Parse("not-a-token")
  require.Error(t, err)
}
