package types

// ShoppingMood is a named preset bundle of keywords, categories and a price
// modifier used to bias recommendations contextually.
type ShoppingMood struct {
  ID            string   `json:"id"`
  Name          string   `json:"name"`
  Description   string   `json:"description"`
  Keywords      []string `json:"keywords"`
  Categories    []string `json:"categories"`
  PriceModifier float64  `json:"price_modifier"`
  Urgency       string   `json:"urgency"`
}

func ShoppingMoods() []ShoppingMood {
  return []ShoppingMood{
    {
      ID:            "cozy_weekend",
      Name:          "Cozy Weekend",
      Description:   "Looking for comfort items for a relaxing weekend",
      Keywords:      []string{"comfort", "relaxing", "cozy", "weekend", "home"},
      Categories:    []string{"Home & Kitchen", "Fashion", "Books & Stationery"},
      PriceModifier: 0.8,
      Urgency:       "low",
    },
    {
      ID:            "work_mode",
      Name:          "Work Essentials",
      Description:   "Professional items to enhance productivity",
      Keywords:      []string{"professional", "work", "office", "productivity", "business"},
      Categories:    []string{"Electronics", "Books & Stationery", "Fashion"},
      PriceModifier: 1.2,
      Urgency:       "medium",
    },
    {
      ID:            "fitness_motivated",
      Name:          "Fitness Journey",
      Description:   "Ready to invest in health and fitness",
      Keywords:      []string{"fitness", "health", "workout", "active", "strong"},
      Categories:    []string{"Sports & Fitness", "Personal Care"},
      PriceModifier: 1.1,
      Urgency:       "medium",
    },
    {
      ID:            "festive_celebration",
      Name:          "Festival Ready",
      Description:   "Preparing for festivals and celebrations",
      Keywords:      []string{"festival", "celebration", "traditional", "festive", "special"},
      Categories:    []string{"Fashion", "Home & Kitchen", "Accessories"},
      PriceModifier: 1.3,
      Urgency:       "high",
    },
    {
      ID:            "gift_hunting",
      Name:          "Perfect Gift",
      Description:   "Finding the ideal gift for someone special",
      Keywords:      []string{"gift", "present", "surprise", "special", "thoughtful"},
      Categories:    []string{"Electronics", "Fashion", "Accessories", "Books & Stationery"},
      PriceModifier: 1.15,
      Urgency:       "high",
    },
    {
      // Empty categories means every category qualifies.
      ID:            "bargain_hunting",
      Name:          "Smart Savings",
      Description:   "Looking for the best deals and value",
      Keywords:      []string{"deal", "bargain", "save", "budget", "value"},
      Categories:    []string{},
      PriceModifier: 0.6,
      Urgency:       "low",
    },
  }
}

func FindShoppingMood(id string) (ShoppingMood, bool) {
  for _, m := range ShoppingMoods() {
    if m.ID == id {
      return m, true
    }
  }
  return ShoppingMood{}, false
}
