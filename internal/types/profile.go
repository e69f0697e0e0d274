package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  MaxPreferredCategories = 10
  MaxCommonKeywords      = 50
  MaxRecentSearches      = 5
)

// Personality archetypes derived from profile statistics.
const (
  PersonalityExplorer     = "explorer"
  PersonalityResearcher   = "researcher"
  PersonalityBargainHunter = "bargain_hunter"
  PersonalityBrandLoyal   = "brand_loyal"
  PersonalityTrendsetter  = "trendsetter"
)

const (
  BudgetTierBudget   = "budget"
  BudgetTierModerate = "moderate"
  BudgetTierPremium  = "premium"
)

type PriceRange struct {
  Min float64 `json:"min"`
  Max float64 `json:"max"`
}

type Preferences struct {
  Categories        []string   `json:"categories"`
  Brands            []string   `json:"brands"`
  PriceRange        PriceRange `json:"price_range"`
  Style             []string   `json:"style"`
  Priorities        []string   `json:"priorities"`
  ShoppingFrequency string     `json:"shopping_frequency"`
  PreferredDelivery string     `json:"preferred_delivery"`
  Budget            string     `json:"budget,omitempty"`
  Sustainability    string     `json:"sustainability,omitempty"`
}

type PurchaseHistory struct {
  TotalSpent            float64 `json:"total_spent"`
  OrderCount            int     `json:"order_count"`
  AverageOrderValue     float64 `json:"average_order_value"`
  MostPurchasedCategory string  `json:"most_purchased_category"`
}

type SearchPatterns struct {
  CommonKeywords []string `json:"common_keywords"`
  RecentSearches []string `json:"recent_searches"`
}

type Behavior struct {
  SessionDuration float64         `json:"session_duration"`
  PagesPerSession int             `json:"pages_per_session"`
  PurchaseHistory PurchaseHistory `json:"purchase_history"`
  SearchPatterns  SearchPatterns  `json:"search_patterns"`
}

type AIProfile struct {
  PersonalityType string  `json:"personality_type"`
  ConfidenceScore float64 `json:"confidence_score"`
  LearningStage   string  `json:"learning_stage"`
}

type ShoppingContext struct {
  CurrentMood   string `json:"current_mood,omitempty"`
  CurrentNeed   string `json:"current_need,omitempty"`
  BudgetContext string `json:"budget_context,omitempty"`
  LastIntent    string `json:"last_intent,omitempty"`
}

// UserProfile accumulates declared and inferred preferences for one session.
// Created on first contact, mutated incrementally on every tracked
// interaction.
type UserProfile struct {
  ID          uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
  SessionID   uuid.UUID                           `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
  Preferences datatypes.JSONType[Preferences]     `gorm:"column:preferences" json:"preferences"`
  Behavior    datatypes.JSONType[Behavior]        `gorm:"column:behavior" json:"behavior"`
  AIProfile   datatypes.JSONType[AIProfile]       `gorm:"column:ai_profile" json:"ai_profile"`
  Context     datatypes.JSONType[ShoppingContext] `gorm:"column:context" json:"context"`
  CreatedAt   time.Time                           `gorm:"not null" json:"created_at"`
  LastActive  time.Time                           `gorm:"not null" json:"last_active"`
}

func (UserProfile) TableName() string { return "user_profile" }

// NewUserProfile builds the initial profile for a session, mirroring the
// defaults a brand-new visitor gets.
func NewUserProfile(sessionID uuid.UUID, now time.Time) *UserProfile {
  return &UserProfile{
    ID:        uuid.New(),
    SessionID: sessionID,
    Preferences: datatypes.NewJSONType(Preferences{
      Categories:        []string{},
      Brands:            []string{},
      PriceRange:        PriceRange{Min: 0, Max: 100000},
      Style:             []string{},
      Priorities:        []string{"quality", "price"},
      ShoppingFrequency: "monthly",
      PreferredDelivery: "standard",
    }),
    Behavior: datatypes.NewJSONType(Behavior{
      PurchaseHistory: PurchaseHistory{},
      SearchPatterns: SearchPatterns{
        CommonKeywords: []string{},
        RecentSearches: []string{},
      },
    }),
    AIProfile: datatypes.NewJSONType(AIProfile{
      PersonalityType: PersonalityExplorer,
      ConfidenceScore: 0.1,
      LearningStage:   "new",
    }),
    Context:    datatypes.NewJSONType(ShoppingContext{}),
    CreatedAt:  now,
    LastActive: now,
  }
}
