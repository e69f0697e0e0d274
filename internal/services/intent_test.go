package services

import (
  "testing"

  "github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
  classifier := NewIntentClassifier()

  cases := []struct {
    name       string
    message    string
    wantIntent string
  }{
    {
      name:       "search",
      message:    "find wireless headphones under 5000",
      wantIntent: IntentProductSearch,
    },
    {
      name:       "comparison",
      message:    "what is the difference between these laptops",
      wantIntent: IntentProductComparison,
    },
    {
      name:       "recommendation",
      message:    "can you recommend a good smart watch",
      wantIntent: IntentRecommendation,
    },
    {
      name:       "budget",
      message:    "show me cheap speakers",
      wantIntent: IntentBudgetShopping,
    },
    {
      name:       "price",
      message:    "how much does the treadmill cost",
      wantIntent: IntentPriceInquiry,
    },
    {
      name:       "help",
      message:    "how to pick a router",
      wantIntent: IntentHelpRequest,
    },
    {
      name:       "trending",
      message:    "whats popular this week",
      wantIntent: IntentTrendingInquiry,
    },
    {
      name:       "fallback",
      message:    "hello there",
      wantIntent: IntentGeneralChat,
    },
    {
      // Both "find" and "budget" present; search is checked first.
      name:       "overlap_resolves_by_priority",
      message:    "find something within my budget",
      wantIntent: IntentProductSearch,
    },
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := classifier.Classify(tc.message)
      assert.Equal(t, tc.wantIntent, got.Intent)
    })
  }
}

func TestClassifyExtractsEntities(t *testing.T) {
  classifier := NewIntentClassifier()

  got := classifier.Classify("find wireless headphones under 5000")
  assert.Equal(t, IntentProductSearch, got.Intent)
  assert.Contains(t, got.Entities, "product:headphones")
  assert.Contains(t, got.Entities, "price:5000")
}

func TestClassifyFallbackConfidence(t *testing.T) {
  classifier := NewIntentClassifier()

  got := classifier.Classify("good morning")
  assert.Equal(t, IntentGeneralChat, got.Intent)
  assert.Equal(t, 0.6, got.Confidence)
  assert.Empty(t, got.Entities)
}

func TestClassifyPriceEntityFirstNumberOnly(t *testing.T) {
  classifier := NewIntentClassifier()

  got := classifier.Classify("find a phone between 5000 and 10000")
  assert.Contains(t, got.Entities, "price:5000")
  assert.NotContains(t, got.Entities, "price:10000")
}
