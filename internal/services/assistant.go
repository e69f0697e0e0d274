package services

import (
  "context"
  "fmt"
  "math/rand"
  "strings"
  "sync"
  "time"

  "github.com/sony/gobreaker"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

// AssistantClient is the seam where a real model service would be plugged in.
// The stub implementation simulates one with artificial latency and canned
// text; callers must treat every method as fallible and fall back to the
// local heuristics.
type AssistantClient interface {
  Respond(ctx context.Context, prompt string) (*AssistantReply, error)
  SearchProducts(ctx context.Context, query string, products []*types.Product) (*AssistantSearchResult, error)
  Recommend(ctx context.Context, prefs AssistantPreferences, products []*types.Product) (*AssistantRecommendation, error)
  AnswerQuestion(ctx context.Context, question string, product *types.Product) (*AssistantReply, error)
}

type AssistantReply struct {
  Text        string
  Confidence  float64
  Suggestions []string
}

type AssistantSearchResult struct {
  Results      []*types.Product
  Explanation  string
  Confidence   float64
  Suggestions  []string
  SearchIntent string
}

type AssistantPreferences struct {
  Categories        []string
  PriceRange        types.PriceRange
  BrowsedProducts   []string
  PreviousPurchases []string
  Mood              string
  Urgency           string
}

type AssistantRecommendation struct {
  Products     []*types.Product
  Explanations []string
  Confidence   float64
}

type stubAssistant struct {
  log        *logger.Logger
  minDelay   time.Duration
  maxDelay   time.Duration
  mu         sync.Mutex
  rng        *rand.Rand
  failNext   bool
}

// NewAssistantClient builds the provider selected by ASSISTANT_PROVIDER.
// Only the stub exists today; the env knob is the configuration seam for a
// remote model implementation.
func NewAssistantClient(log *logger.Logger) (AssistantClient, error) {
  provider := utils.GetEnv("ASSISTANT_PROVIDER", "stub", log)
  switch provider {
  case "stub":
    return NewStubAssistant(log), nil
  default:
    return nil, fmt.Errorf("unknown ASSISTANT_PROVIDER %q", provider)
  }
}

func NewStubAssistant(log *logger.Logger) AssistantClient {
  minDelay := utils.GetEnvAsInt("ASSISTANT_MIN_DELAY_MS", 500, log)
  maxDelay := utils.GetEnvAsInt("ASSISTANT_MAX_DELAY_MS", 1000, log)
  if maxDelay < minDelay {
    maxDelay = minDelay
  }
  return &stubAssistant{
    log:      log.With("service", "StubAssistant"),
    minDelay: time.Duration(minDelay) * time.Millisecond,
    maxDelay: time.Duration(maxDelay) * time.Millisecond,
    rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
  }
}

// newStubAssistantForTest skips the artificial delay.
func newStubAssistantForTest(log *logger.Logger) *stubAssistant {
  return &stubAssistant{
    log: log,
    rng: rand.New(rand.NewSource(1)),
  }
}

// FailNext makes the next call return an error. Exercises the breaker and
// fallback paths in tests.
func (a *stubAssistant) FailNext() {
  a.mu.Lock()
  a.failNext = true
  a.mu.Unlock()
}

// simulateCall sleeps for the configured artificial latency, honouring
// context cancellation (the browser original could not abort a pending call;
// here the caller can).
func (a *stubAssistant) simulateCall(ctx context.Context) error {
  a.mu.Lock()
  if a.failNext {
    a.failNext = false
    a.mu.Unlock()
    return fmt.Errorf("assistant unavailable")
  }
  delay := a.minDelay
  if a.maxDelay > a.minDelay {
    delay += time.Duration(a.rng.Int63n(int64(a.maxDelay - a.minDelay)))
  }
  a.mu.Unlock()

  if delay <= 0 {
    return ctx.Err()
  }
  timer := time.NewTimer(delay)
  defer timer.Stop()
  select {
  case <-ctx.Done():
    return ctx.Err()
  case <-timer.C:
    return nil
  }
}

func (a *stubAssistant) Respond(ctx context.Context, prompt string) (*AssistantReply, error) {
  if err := a.simulateCall(ctx); err != nil {
    return nil, err
  }
  return &AssistantReply{
    Text:        "I can help with product recommendations and shopping assistance!",
    Confidence:  0.80,
    Suggestions: []string{"Show products", "Compare items", "Find deals"},
  }, nil
}

func (a *stubAssistant) SearchProducts(ctx context.Context, query string, products []*types.Product) (*AssistantSearchResult, error) {
  if err := a.simulateCall(ctx); err != nil {
    return nil, err
  }

  q := strings.ToLower(query)
  var filtered []*types.Product
  for _, p := range products {
    if strings.Contains(strings.ToLower(p.Name), q) {
      filtered = append(filtered, p)
    }
  }
  if len(filtered) > 10 {
    filtered = filtered[:10]
  }
  return &AssistantSearchResult{
    Results:      filtered,
    Explanation:  fmt.Sprintf("Found %d products.", len(filtered)),
    Confidence:   0.85,
    Suggestions:  []string{"Show more", "Filter by price", "Sort by rating"},
    SearchIntent: fmt.Sprintf("Looking for products matching %q", query),
  }, nil
}

func (a *stubAssistant) Recommend(ctx context.Context, prefs AssistantPreferences, products []*types.Product) (*AssistantRecommendation, error) {
  if err := a.simulateCall(ctx); err != nil {
    return nil, err
  }

  var picks []*types.Product
  for _, p := range products {
    if p.Rating >= 4.0 {
      picks = append(picks, p)
    }
    if len(picks) == 5 {
      break
    }
  }
  explanations := make([]string, len(picks))
  for i, p := range picks {
    explanations[i] = fmt.Sprintf("%s - Great choice based on your preferences", p.Name)
  }
  return &AssistantRecommendation{
    Products:     picks,
    Explanations: explanations,
    Confidence:   0.80,
  }, nil
}

func (a *stubAssistant) AnswerQuestion(ctx context.Context, question string, product *types.Product) (*AssistantReply, error) {
  if err := a.simulateCall(ctx); err != nil {
    return nil, err
  }

  text := "I can help answer your product-related questions!"
  if product != nil {
    text = fmt.Sprintf("Based on %s, I can help answer your question about this product.", product.Name)
  }
  return &AssistantReply{
    Text:        text,
    Confidence:  0.75,
    Suggestions: []string{"Tell me more", "Compare with others", "Show similar products"},
  }, nil
}

// breakerAssistant wraps another AssistantClient with a circuit breaker so
// repeated stub failures short-circuit straight to the local heuristics
// instead of paying the simulated latency every time.
type breakerAssistant struct {
  inner AssistantClient
  cb    *gobreaker.CircuitBreaker
}

func NewBreakerAssistant(inner AssistantClient, log *logger.Logger) AssistantClient {
  breakerLog := log.With("service", "AssistantBreaker")
  failureRatio := utils.GetEnvAsFloat("ASSISTANT_BREAKER_FAILURE_RATIO", 0.6, log)
  cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
    Name:        "assistant",
    MaxRequests: 3,
    Interval:    30 * time.Second,
    Timeout:     15 * time.Second,
    ReadyToTrip: func(counts gobreaker.Counts) bool {
      return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= failureRatio
    },
    OnStateChange: func(name string, from, to gobreaker.State) {
      breakerLog.Warn("Assistant breaker state changed", "from", from.String(), "to", to.String())
    },
  })
  return &breakerAssistant{inner: inner, cb: cb}
}

func (b *breakerAssistant) Respond(ctx context.Context, prompt string) (*AssistantReply, error) {
  out, err := b.cb.Execute(func() (interface{}, error) {
    return b.inner.Respond(ctx, prompt)
  })
  if err != nil {
    return nil, err
  }
  return out.(*AssistantReply), nil
}

func (b *breakerAssistant) SearchProducts(ctx context.Context, query string, products []*types.Product) (*AssistantSearchResult, error) {
  out, err := b.cb.Execute(func() (interface{}, error) {
    return b.inner.SearchProducts(ctx, query, products)
  })
  if err != nil {
    return nil, err
  }
  return out.(*AssistantSearchResult), nil
}

func (b *breakerAssistant) Recommend(ctx context.Context, prefs AssistantPreferences, products []*types.Product) (*AssistantRecommendation, error) {
  out, err := b.cb.Execute(func() (interface{}, error) {
    return b.inner.Recommend(ctx, prefs, products)
  })
  if err != nil {
    return nil, err
  }
  return out.(*AssistantRecommendation), nil
}

func (b *breakerAssistant) AnswerQuestion(ctx context.Context, question string, product *types.Product) (*AssistantReply, error) {
  out, err := b.cb.Execute(func() (interface{}, error) {
    return b.inner.AnswerQuestion(ctx, question, product)
  })
  if err != nil {
    return nil, err
  }
  return out.(*AssistantReply), nil
}
