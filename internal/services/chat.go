package services

import (
  "context"
  "fmt"
  "strconv"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
  "github.com/shopmuse/shopmuse-backend/internal/utils"
)

type ChatService interface {
  // HandleMessage classifies one user message and answers it. Messages are
  // independent; only recent searches and the last intent carry forward on
  // the profile.
  HandleMessage(ctx context.Context, sessionID uuid.UUID, text string) (*types.ChatMessage, error)
}

type chatService struct {
  db              *gorm.DB
  log             *logger.Logger
  classifier      IntentClassifier
  search          SearchService
  recommendations RecommendationService
  comparisons     ComparisonService
  budgets         BudgetService
  predictions     PricePredictionService
  personalization PersonalizationService
  assistant       AssistantClient
  productRepo     repos.ProductRepo
  profileRepo     repos.ProfileRepo
  now             func() time.Time
}

func NewChatService(
  db *gorm.DB,
  baseLog *logger.Logger,
  classifier IntentClassifier,
  search SearchService,
  recommendations RecommendationService,
  comparisons ComparisonService,
  budgets BudgetService,
  predictions PricePredictionService,
  personalization PersonalizationService,
  assistant AssistantClient,
  productRepo repos.ProductRepo,
  profileRepo repos.ProfileRepo,
) ChatService {
  return &chatService{
    db:              db,
    log:             baseLog.With("service", "ChatService"),
    classifier:      classifier,
    search:          search,
    recommendations: recommendations,
    comparisons:     comparisons,
    budgets:         budgets,
    predictions:     predictions,
    personalization: personalization,
    assistant:       assistant,
    productRepo:     productRepo,
    profileRepo:     profileRepo,
    now:             time.Now,
  }
}

func (cs *chatService) HandleMessage(ctx context.Context, sessionID uuid.UUID, text string) (*types.ChatMessage, error) {
  text = strings.TrimSpace(text)
  if text == "" {
    return nil, fmt.Errorf("message must not be empty")
  }

  result := cs.classifier.Classify(text)
  cs.log.Debug("Classified chat message", "session_id", sessionID, "intent", result.Intent, "confidence", result.Confidence)

  var reply *types.ChatMessage
  var err error
  switch result.Intent {
  case IntentProductSearch:
    reply, err = cs.handleSearch(ctx, sessionID, text, result)
  case IntentProductComparison:
    reply, err = cs.handleComparison(ctx, sessionID, result)
  case IntentRecommendation:
    reply, err = cs.handleRecommendation(ctx, sessionID)
  case IntentBudgetShopping:
    reply, err = cs.handleBudget(ctx, sessionID, result)
  case IntentPriceInquiry:
    reply, err = cs.handlePriceInquiry(ctx, result)
  case IntentHelpRequest:
    reply = cs.handleHelp(result)
  case IntentTrendingInquiry:
    reply, err = cs.handleTrending(ctx)
  default:
    reply = cs.handleGeneralChat(ctx, sessionID, text, result)
  }
  if err != nil {
    return nil, err
  }

  cs.rememberIntent(ctx, sessionID, result.Intent)
  return reply, nil
}

func (cs *chatService) handleSearch(ctx context.Context, sessionID uuid.UUID, text string, result IntentResult) (*types.ChatMessage, error) {
  maxPrice := entityPrice(result.Entities)
  products, err := cs.search.Search(ctx, text, maxPrice, 6)
  if err != nil {
    return nil, err
  }

  if _, err := cs.personalization.TrackInteraction(ctx, sessionID, TrackEvent{Type: TrackSearch, Query: text}); err != nil {
    cs.log.Warn("Failed to track search from chat", "session_id", sessionID, "error", err)
  }

  if len(products) == 0 {
    return cs.reply("I couldn't find anything matching that. Try different words or browse the trending products.",
      types.ChatMessageText, &types.ChatMetadata{
        Suggestions: []string{"Show trending products", "Recommend something for me"},
        Confidence:  result.Confidence,
        ActionType:  "search",
      }), nil
  }

  msg := fmt.Sprintf("I found %d products for you.", len(products))
  if maxPrice > 0 {
    msg = fmt.Sprintf("I found %d products under %s.", len(products), utils.FormatINR(maxPrice))
  }
  return cs.reply(msg, types.ChatMessageProduct, &types.ChatMetadata{
    Products:    dereference(products),
    Suggestions: []string{"Compare these", "Show cheaper options", "Sort by rating"},
    Confidence:  result.Confidence,
    ActionType:  "search",
  }), nil
}

func (cs *chatService) handleComparison(ctx context.Context, sessionID uuid.UUID, result IntentResult) (*types.ChatMessage, error) {
  mentioned := cs.mentionedProducts(ctx, result.Entities)
  if len(mentioned) < 2 {
    return cs.reply("Tell me which two products to compare, for example \"compare headphones vs watch\".",
      types.ChatMessageText, &types.ChatMetadata{
        Suggestions: []string{"Compare headphones vs watch", "Show trending products"},
        Confidence:  result.Confidence,
        ActionType:  "comparison",
      }), nil
  }

  ids := make([]uuid.UUID, 0, len(mentioned))
  for _, p := range mentioned {
    ids = append(ids, p.ID)
  }
  comparison, err := cs.comparisons.Compare(ctx, sessionID, ids)
  if err != nil {
    return nil, err
  }

  winner := comparison.Products[0]
  return cs.reply(fmt.Sprintf("%s Overall score: %.2f.", comparison.Reasoning, winner.Score),
    types.ChatMessageComparison, &types.ChatMetadata{
      Products:    dereference(mentioned),
      Suggestions: comparison.Recommendations,
      Confidence:  result.Confidence,
      ActionType:  "comparison",
    }), nil
}

func (cs *chatService) handleRecommendation(ctx context.Context, sessionID uuid.UUID) (*types.ChatMessage, error) {
  recs, err := cs.recommendations.Generate(ctx, sessionID, 3)
  if err != nil {
    return nil, err
  }
  if len(recs) == 0 {
    return cs.reply("I don't have enough to go on yet. Browse a few products and I'll learn your taste.",
      types.ChatMessageText, &types.ChatMetadata{
        Suggestions: []string{"Show trending products"},
        ActionType:  "recommendation",
      }), nil
  }

  products := make([]types.Product, 0, len(recs))
  for _, rec := range recs {
    products = append(products, rec.Product)
  }
  return cs.reply(fmt.Sprintf("Here are my top picks. %s", recs[0].Explanation),
    types.ChatMessageRecommendation, &types.ChatMetadata{
      Products:    products,
      Suggestions: []string{"Why these?", "Show more", "Compare the top two"},
      Confidence:  float64(recs[0].Confidence) / 100,
      ActionType:  "recommendation",
    }), nil
}

func (cs *chatService) handleBudget(ctx context.Context, sessionID uuid.UUID, result IntentResult) (*types.ChatMessage, error) {
  ceiling := entityPrice(result.Entities)
  if ceiling == 0 {
    ceiling = 2000
  }

  products, err := cs.productRepo.ListUnderPrice(ctx, nil, ceiling)
  if err != nil {
    return nil, err
  }
  if len(products) > 6 {
    products = products[:6]
  }

  _, budgetNote, err := cs.budgets.Affordability(ctx, sessionID, ceiling)
  if err != nil {
    cs.log.Warn("Affordability check failed", "session_id", sessionID, "error", err)
    budgetNote = ""
  }

  msg := fmt.Sprintf("Here are great value picks under %s.", utils.FormatINR(ceiling))
  if budgetNote != "" {
    msg += " " + budgetNote
  }
  return cs.reply(msg, types.ChatMessageProduct, &types.ChatMetadata{
    Products:    dereference(products),
    Suggestions: []string{"Create a budget plan", "Show even cheaper options"},
    Confidence:  result.Confidence,
    ActionType:  "budget",
  }), nil
}

func (cs *chatService) handlePriceInquiry(ctx context.Context, result IntentResult) (*types.ChatMessage, error) {
  mentioned := cs.mentionedProducts(ctx, result.Entities)
  if len(mentioned) == 0 {
    return cs.reply("Which product's price are you curious about? Name it and I'll check the trend.",
      types.ChatMessageText, &types.ChatMetadata{
        Suggestions: []string{"Price of headphones", "Price of watch"},
        Confidence:  result.Confidence,
        ActionType:  "price",
      }), nil
  }

  product := mentioned[0]
  prediction, err := cs.predictions.Predict(ctx, product.ID)
  if err != nil {
    return nil, err
  }

  msg := fmt.Sprintf("%s currently costs %s. The price looks %s. %s",
    product.Name, utils.FormatINR(product.Price), prediction.PriceDirection, prediction.BestBuyTime)
  return cs.reply(msg, types.ChatMessageProduct, &types.ChatMetadata{
    Products:    []types.Product{*product},
    Suggestions: []string{"Set a price drop alert", "Show price history"},
    Confidence:  prediction.Confidence,
    ActionType:  "price",
  }), nil
}

func (cs *chatService) handleHelp(result IntentResult) *types.ChatMessage {
  return cs.reply("I can search products, recommend picks based on your browsing, compare items, track budgets and watch prices. What would you like to do?",
    types.ChatMessageText, &types.ChatMetadata{
      Suggestions: []string{"Find wireless headphones", "Recommend something", "Show trending products", "Create a budget plan"},
      Confidence:  result.Confidence,
      ActionType:  "help",
    })
}

func (cs *chatService) handleTrending(ctx context.Context) (*types.ChatMessage, error) {
  products, err := cs.search.Trending(ctx, 5)
  if err != nil {
    return nil, err
  }
  return cs.reply("Here's what shoppers are loving right now.", types.ChatMessageProduct, &types.ChatMetadata{
    Products:    dereference(products),
    Suggestions: []string{"Recommend from these", "Compare the top two"},
    Confidence:  0.85,
    ActionType:  "trending",
  }), nil
}

func (cs *chatService) handleGeneralChat(ctx context.Context, sessionID uuid.UUID, text string, result IntentResult) *types.ChatMessage {
  if reply, err := cs.assistant.Respond(ctx, text); err == nil {
    return cs.reply(reply.Text, types.ChatMessageText, &types.ChatMetadata{
      Suggestions: reply.Suggestions,
      Confidence:  reply.Confidence,
      ActionType:  "chat",
    })
  } else {
    cs.log.Warn("Assistant chat failed, using local reply", "session_id", sessionID, "error", err)
  }

  // Local fallback: lean on whatever shallow context the profile holds.
  msg := "I'm your shopping companion! Ask me to find, compare or recommend products."
  if profile, err := cs.profileRepo.GetBySession(ctx, nil, sessionID); err == nil {
    recent := profile.Behavior.Data().SearchPatterns.RecentSearches
    if len(recent) > 0 {
      msg = fmt.Sprintf("Last time you searched for %q. Want to pick up where you left off?", recent[0])
    }
  }
  return cs.reply(msg, types.ChatMessageText, &types.ChatMetadata{
    Suggestions: []string{"Find wireless headphones", "Show trending products", "Recommend something"},
    Confidence:  result.Confidence,
    ActionType:  "chat",
  })
}

// mentionedProducts resolves product entities to catalog rows, best match
// per entity.
func (cs *chatService) mentionedProducts(ctx context.Context, entities []string) []*types.Product {
  var products []*types.Product
  seen := make(map[uuid.UUID]bool)
  for _, e := range entities {
    name, ok := strings.CutPrefix(e, "product:")
    if !ok {
      continue
    }
    matches, err := cs.search.Search(ctx, name, 0, 1)
    if err != nil || len(matches) == 0 {
      continue
    }
    if !seen[matches[0].ID] {
      seen[matches[0].ID] = true
      products = append(products, matches[0])
    }
  }
  return products
}

func (cs *chatService) rememberIntent(ctx context.Context, sessionID uuid.UUID, intent string) {
  profile, err := cs.profileRepo.GetOrCreateBySession(ctx, nil, sessionID)
  if err != nil {
    cs.log.Warn("Failed to load profile for intent memory", "session_id", sessionID, "error", err)
    return
  }
  sc := profile.Context.Data()
  sc.LastIntent = intent
  profile.Context = datatypes.NewJSONType(sc)
  profile.LastActive = cs.now()
  if err := cs.profileRepo.Save(ctx, nil, profile); err != nil {
    cs.log.Warn("Failed to save last intent", "session_id", sessionID, "error", err)
  }
}

func (cs *chatService) reply(text, msgType string, metadata *types.ChatMetadata) *types.ChatMessage {
  return &types.ChatMessage{
    ID:        uuid.New(),
    Text:      text,
    Sender:    types.ChatSenderAssistant,
    Timestamp: cs.now(),
    Type:      msgType,
    Metadata:  metadata,
  }
}

func entityPrice(entities []string) float64 {
  for _, e := range entities {
    if raw, ok := strings.CutPrefix(e, "price:"); ok {
      if v, err := strconv.ParseFloat(raw, 64); err == nil {
        return v
      }
    }
  }
  return 0
}

func dereference(products []*types.Product) []types.Product {
  out := make([]types.Product, 0, len(products))
  for _, p := range products {
    out = append(out, *p)
  }
  return out
}
