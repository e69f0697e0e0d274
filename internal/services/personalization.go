package services

import (
  "context"
  "fmt"
  "math"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

// Tracked event kinds accepted by TrackEvent.Type.
const (
  TrackProductView    = "product_view"
  TrackSearch         = "search"
  TrackCategoryBrowse = "category_browse"
  TrackPurchase       = "purchase"
)

// TrackEvent is one observed shopper action. Fields beyond Type are
// event-specific: Product for views, Query for searches, Category for
// browses, Product+Amount for purchases.
type TrackEvent struct {
  Type     string
  Product  *types.Product
  Query    string
  Category string
  Amount   float64
}

// SeasonalContext names the current retail season and what to push during it.
type SeasonalContext struct {
  Season     string   `json:"season"`
  Categories []string `json:"categories"`
  Keywords   []string `json:"keywords"`
  Message    string   `json:"message"`
}

// PreferenceUpdate carries explicitly declared preferences. Nil/empty fields
// are left untouched so partial updates are safe.
type PreferenceUpdate struct {
  PriceRange *types.PriceRange `json:"price_range"`
  Priorities []string          `json:"priorities"`
  Brands     []string          `json:"brands"`
  Budget     *string           `json:"budget"`
}

type PersonalizationService interface {
  GetProfile(ctx context.Context, sessionID uuid.UUID) (*types.UserProfile, error)
  // TrackInteraction folds one event into the session profile and re-derives
  // the personality archetype and confidence from the updated statistics.
  TrackInteraction(ctx context.Context, sessionID uuid.UUID, event TrackEvent) (*types.UserProfile, error)
  // UpdatePreferences applies declared preferences on top of the inferred
  // ones, then re-derives the archetype.
  UpdatePreferences(ctx context.Context, sessionID uuid.UUID, update PreferenceUpdate) (*types.UserProfile, error)
  SetMood(ctx context.Context, sessionID uuid.UUID, moodID string) (*types.UserProfile, error)
  Moods() []types.ShoppingMood
  Seasonal() SeasonalContext
}

type personalizationService struct {
  db          *gorm.DB
  log         *logger.Logger
  profileRepo repos.ProfileRepo
  now         func() time.Time
}

func NewPersonalizationService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo) PersonalizationService {
  return &personalizationService{
    db:          db,
    log:         baseLog.With("service", "PersonalizationService"),
    profileRepo: profileRepo,
    now:         time.Now,
  }
}

func (ps *personalizationService) GetProfile(ctx context.Context, sessionID uuid.UUID) (*types.UserProfile, error) {
  return ps.profileRepo.GetOrCreateBySession(ctx, nil, sessionID)
}

func (ps *personalizationService) TrackInteraction(ctx context.Context, sessionID uuid.UUID, event TrackEvent) (*types.UserProfile, error) {
  profile, err := ps.profileRepo.GetOrCreateBySession(ctx, nil, sessionID)
  if err != nil {
    return nil, err
  }

  prefs := profile.Preferences.Data()
  behavior := profile.Behavior.Data()

  switch event.Type {
  case TrackProductView:
    if event.Product == nil {
      return nil, fmt.Errorf("product_view event requires a product")
    }
    prefs.Categories = prependCapped(prefs.Categories, event.Product.Category, types.MaxPreferredCategories)
    if event.Product.Brand != "" {
      prefs.Brands = appendCapped(prefs.Brands, event.Product.Brand, types.MaxPreferredCategories)
    }
    // Viewing pricier products gradually widens the declared price band,
    // but a single outlier view (beyond 1.5x the current max) does not.
    if event.Product.Price > prefs.PriceRange.Min && event.Product.Price < prefs.PriceRange.Max*1.5 {
      prefs.PriceRange.Max = math.Max(prefs.PriceRange.Max, event.Product.Price*1.2)
    }
    behavior.PagesPerSession++
    behavior.SessionDuration += 0.5

  case TrackSearch:
    query := strings.TrimSpace(event.Query)
    if query == "" {
      return nil, fmt.Errorf("search event requires a query")
    }
    for _, word := range strings.Fields(strings.ToLower(query)) {
      if len(word) < 3 {
        continue
      }
      behavior.SearchPatterns.CommonKeywords = appendCapped(behavior.SearchPatterns.CommonKeywords, word, types.MaxCommonKeywords)
    }
    behavior.SearchPatterns.RecentSearches = prependCapped(behavior.SearchPatterns.RecentSearches, query, types.MaxRecentSearches)

  case TrackCategoryBrowse:
    if event.Category == "" {
      return nil, fmt.Errorf("category_browse event requires a category")
    }
    prefs.Categories = prependCapped(prefs.Categories, event.Category, types.MaxPreferredCategories)
    behavior.PagesPerSession++

  case TrackPurchase:
    if event.Product == nil {
      return nil, fmt.Errorf("purchase event requires a product")
    }
    amount := event.Amount
    if amount <= 0 {
      amount = event.Product.Price
    }
    hist := behavior.PurchaseHistory
    hist.TotalSpent += amount
    hist.OrderCount++
    hist.AverageOrderValue = hist.TotalSpent / float64(hist.OrderCount)
    hist.MostPurchasedCategory = event.Product.Category
    behavior.PurchaseHistory = hist

  default:
    return nil, fmt.Errorf("unknown interaction type %q", event.Type)
  }

  ai := deriveAIProfile(prefs, behavior)

  profile.Preferences = datatypes.NewJSONType(prefs)
  profile.Behavior = datatypes.NewJSONType(behavior)
  profile.AIProfile = datatypes.NewJSONType(ai)
  profile.LastActive = ps.now()

  if err := ps.profileRepo.Save(ctx, nil, profile); err != nil {
    return nil, err
  }
  ps.log.Debug("Tracked interaction", "session_id", sessionID, "type", event.Type, "personality", ai.PersonalityType)
  return profile, nil
}

func (ps *personalizationService) UpdatePreferences(ctx context.Context, sessionID uuid.UUID, update PreferenceUpdate) (*types.UserProfile, error) {
  if update.PriceRange != nil {
    if update.PriceRange.Min < 0 || update.PriceRange.Max <= update.PriceRange.Min {
      return nil, fmt.Errorf("invalid price range %v-%v", update.PriceRange.Min, update.PriceRange.Max)
    }
  }
  if update.Budget != nil {
    switch *update.Budget {
    case types.BudgetTierBudget, types.BudgetTierModerate, types.BudgetTierPremium:
    default:
      return nil, fmt.Errorf("unknown budget tier %q", *update.Budget)
    }
  }

  profile, err := ps.profileRepo.GetOrCreateBySession(ctx, nil, sessionID)
  if err != nil {
    return nil, err
  }

  prefs := profile.Preferences.Data()
  if update.PriceRange != nil {
    prefs.PriceRange = *update.PriceRange
  }
  if len(update.Priorities) > 0 {
    prefs.Priorities = update.Priorities
  }
  if len(update.Brands) > 0 {
    prefs.Brands = update.Brands
  }
  if update.Budget != nil {
    prefs.Budget = *update.Budget
  }

  ai := deriveAIProfile(prefs, profile.Behavior.Data())

  profile.Preferences = datatypes.NewJSONType(prefs)
  profile.AIProfile = datatypes.NewJSONType(ai)
  profile.LastActive = ps.now()

  if err := ps.profileRepo.Save(ctx, nil, profile); err != nil {
    return nil, err
  }
  ps.log.Debug("Updated declared preferences", "session_id", sessionID)
  return profile, nil
}

func (ps *personalizationService) SetMood(ctx context.Context, sessionID uuid.UUID, moodID string) (*types.UserProfile, error) {
  mood, ok := types.FindShoppingMood(moodID)
  if !ok {
    return nil, fmt.Errorf("unknown shopping mood %q", moodID)
  }

  profile, err := ps.profileRepo.GetOrCreateBySession(ctx, nil, sessionID)
  if err != nil {
    return nil, err
  }

  sc := profile.Context.Data()
  sc.CurrentMood = mood.ID
  profile.Context = datatypes.NewJSONType(sc)
  profile.LastActive = ps.now()

  if err := ps.profileRepo.Save(ctx, nil, profile); err != nil {
    return nil, err
  }
  return profile, nil
}

func (ps *personalizationService) Moods() []types.ShoppingMood {
  return types.ShoppingMoods()
}

// Seasonal maps the current month onto the Indian retail calendar.
func (ps *personalizationService) Seasonal() SeasonalContext {
  return seasonalForMonth(ps.now().Month())
}

func seasonalForMonth(month time.Month) SeasonalContext {
  switch {
  case month >= time.March && month <= time.May:
    return SeasonalContext{
      Season:     "summer",
      Categories: []string{"Fashion", "Personal Care", "Home & Kitchen"},
      Keywords:   []string{"cotton", "cooling", "light", "summer"},
      Message:    "Beat the heat with our summer essentials",
    }
  case month >= time.June && month <= time.September:
    return SeasonalContext{
      Season:     "monsoon",
      Categories: []string{"Home & Kitchen", "Fashion", "Health & Wellness"},
      Keywords:   []string{"waterproof", "indoor", "cozy", "monsoon"},
      Message:    "Monsoon picks to keep you dry and comfortable",
    }
  case month >= time.October && month <= time.November:
    return SeasonalContext{
      Season:     "festive",
      Categories: []string{"Fashion", "Home & Kitchen", "Electronics", "Accessories"},
      Keywords:   []string{"festive", "gift", "celebration", "traditional"},
      Message:    "Festive season deals are live",
    }
  default:
    return SeasonalContext{
      Season:     "winter",
      Categories: []string{"Fashion", "Home & Kitchen", "Health & Wellness"},
      Keywords:   []string{"warm", "winter", "comfort", "wellness"},
      Message:    "Stay warm with our winter collection",
    }
  }
}

// deriveAIProfile applies the archetype rules in precedence order and scales
// confidence with accumulated engagement.
func deriveAIProfile(prefs types.Preferences, behavior types.Behavior) types.AIProfile {
  hist := behavior.PurchaseHistory

  personality := types.PersonalityTrendsetter
  switch {
  case containsString(prefs.Priorities, "price") && hist.OrderCount > 0 && hist.AverageOrderValue < 5000:
    personality = types.PersonalityBargainHunter
  case len(prefs.Categories) > 5:
    personality = types.PersonalityExplorer
  case len(behavior.SearchPatterns.CommonKeywords) > 20:
    personality = types.PersonalityResearcher
  case len(prefs.Brands) > 3:
    personality = types.PersonalityBrandLoyal
  }

  confidence := math.Min(1.0, (behavior.SessionDuration+float64(len(prefs.Categories))*0.1)/10)

  stage := "new"
  switch {
  case confidence >= 0.7:
    stage = "established"
  case confidence >= 0.3:
    stage = "learning"
  }

  return types.AIProfile{
    PersonalityType: personality,
    ConfidenceScore: confidence,
    LearningStage:   stage,
  }
}

func appendCapped(list []string, value string, limit int) []string {
  for _, v := range list {
    if v == value {
      return list
    }
  }
  list = append(list, value)
  if len(list) > limit {
    list = list[len(list)-limit:]
  }
  return list
}

func prependCapped(list []string, value string, limit int) []string {
  out := make([]string, 0, limit)
  out = append(out, value)
  for _, v := range list {
    if v == value {
      continue
    }
    out = append(out, v)
    if len(out) == limit {
      break
    }
  }
  return out
}

func containsString(list []string, value string) bool {
  for _, v := range list {
    if v == value {
      return true
    }
  }
  return false
}
