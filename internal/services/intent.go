package services

import (
  "regexp"
  "strings"
)

// Shopping intents. The classifier resolves free text to exactly one of
// these.
const (
  IntentProductSearch     = "product_search"
  IntentProductComparison = "product_comparison"
  IntentRecommendation    = "recommendation"
  IntentBudgetShopping    = "budget_shopping"
  IntentPriceInquiry      = "price_inquiry"
  IntentHelpRequest       = "help_request"
  IntentTrendingInquiry   = "trending_inquiry"
  IntentGeneralChat       = "general_chat"
)

type IntentResult struct {
  Intent     string   `json:"intent"`
  Entities   []string `json:"entities"`
  Confidence float64  `json:"confidence"`
}

// IntentClassifier maps free text to a shopping intent by case-insensitive
// substring matching against per-intent keyword lists, first match wins.
// Overlapping keywords resolve to whichever branch comes first; that priority
// order is part of the contract.
type IntentClassifier interface {
  Classify(message string) IntentResult
}

type intentRule struct {
  intent     string
  keywords   []string
  confidence float64
}

type keywordIntentClassifier struct {
  rules []intentRule
}

func NewIntentClassifier() IntentClassifier {
  return &keywordIntentClassifier{
    rules: []intentRule{
      {IntentProductSearch, []string{"find", "search", "looking for"}, 0.9},
      {IntentProductComparison, []string{"compare", "vs", "difference"}, 0.85},
      {IntentRecommendation, []string{"recommend", "suggest"}, 0.8},
      {IntentBudgetShopping, []string{"budget", "cheap", "affordable"}, 0.85},
      {IntentPriceInquiry, []string{"price", "cost", "expensive"}, 0.8},
      {IntentHelpRequest, []string{"help", "how to", "guide"}, 0.9},
      {IntentTrendingInquiry, []string{"trending", "popular", "best selling"}, 0.85},
    },
  }
}

func (c *keywordIntentClassifier) Classify(message string) IntentResult {
  lower := strings.ToLower(message)

  for _, rule := range c.rules {
    for _, kw := range rule.keywords {
      if strings.Contains(lower, kw) {
        return IntentResult{
          Intent:     rule.intent,
          Entities:   extractEntities(lower),
          Confidence: rule.confidence,
        }
      }
    }
  }
  return IntentResult{Intent: IntentGeneralChat, Entities: []string{}, Confidence: 0.6}
}

var entityCategories = []string{
  "electronics", "fashion", "home", "kitchen", "sports", "fitness", "books",
  "accessories", "personal care", "grocery", "baby", "kids",
}

var entityProducts = []string{
  "laptop", "phone", "headphones", "shoes", "shirt", "watch", "bag", "camera",
}

var priceRe = regexp.MustCompile(`\d+`)

// extractEntities pulls coarse category/product/price tags out of an already
// lowercased message. Only the first numeric match becomes a price entity.
func extractEntities(lower string) []string {
  entities := []string{}
  for _, cat := range entityCategories {
    if strings.Contains(lower, cat) {
      entities = append(entities, "category:"+cat)
    }
  }
  for _, prod := range entityProducts {
    if strings.Contains(lower, prod) {
      entities = append(entities, "product:"+prod)
    }
  }
  if m := priceRe.FindString(lower); m != "" {
    entities = append(entities, "price:"+m)
  }
  return entities
}
