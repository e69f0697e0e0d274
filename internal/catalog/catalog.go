package catalog

import (
  _ "embed"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gopkg.in/yaml.v3"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

//go:embed seed.yaml
var seedYAML []byte

// PopularTags are the tags the recommendation scorer treats as a popularity
// signal.
var PopularTags = []string{"premium", "wireless", "smart", "fitness", "healthy"}

type seedProduct struct {
  Name        string   `yaml:"name"`
  Description string   `yaml:"description"`
  Price       float64  `yaml:"price"`
  Category    string   `yaml:"category"`
  Brand       string   `yaml:"brand"`
  Rating      float64  `yaml:"rating"`
  Tags        []string `yaml:"tags"`
}

type seedFile struct {
  Products []seedProduct `yaml:"products"`
}

// Seed inserts the embedded catalog into the product table if it is empty.
// The catalog is immutable once loaded.
func Seed(db *gorm.DB, log *logger.Logger) error {
  var count int64
  if err := db.Model(&types.Product{}).Count(&count).Error; err != nil {
    return fmt.Errorf("count products: %w", err)
  }
  if count > 0 {
    log.Debug("Catalog already seeded", "count", count)
    return nil
  }

  products, err := parseSeed()
  if err != nil {
    return err
  }
  if err := db.Create(&products).Error; err != nil {
    return fmt.Errorf("seed catalog: %w", err)
  }
  log.Info("Catalog seeded", "count", len(products))
  return nil
}

func parseSeed() ([]*types.Product, error) {
  var sf seedFile
  if err := yaml.Unmarshal(seedYAML, &sf); err != nil {
    return nil, fmt.Errorf("parse catalog seed: %w", err)
  }
  now := time.Now()
  products := make([]*types.Product, 0, len(sf.Products))
  for _, sp := range sf.Products {
    products = append(products, &types.Product{
      ID:          uuid.New(),
      Name:        sp.Name,
      Description: sp.Description,
      Price:       sp.Price,
      Category:    sp.Category,
      Brand:       sp.Brand,
      Rating:      sp.Rating,
      ImageURL:    placeholderImage(sp.Category, sp.Name),
      Tags:        datatypes.NewJSONSlice(sp.Tags),
      CreatedAt:   now,
    })
  }
  return products, nil
}

var categoryColors = map[string]string{
  "Electronics":       "3b82f6/ffffff",
  "Fashion":           "ec4899/ffffff",
  "Home & Kitchen":    "10b981/ffffff",
  "Sports & Fitness":  "f59e0b/ffffff",
  "Books & Stationery": "8b5cf6/ffffff",
  "Accessories":       "6b7280/ffffff",
  "Personal Care":     "f97316/ffffff",
  "Grocery & Food":    "84cc16/ffffff",
  "Baby & Kids":       "f472b6/ffffff",
  "Automotive":        "1f2937/ffffff",
  "Garden & Outdoor":  "22c55e/ffffff",
}

func placeholderImage(category, name string) string {
  color, ok := categoryColors[category]
  if !ok {
    color = "6b7280/ffffff"
  }
  cleaned := strings.Map(func(r rune) rune {
    switch {
    case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
      return r
    }
    return -1
  }, name)
  if len(cleaned) > 20 {
    cleaned = cleaned[:20]
  }
  return fmt.Sprintf("https://via.placeholder.com/400x300/%s?text=%s", color, strings.ReplaceAll(cleaned, " ", "+"))
}
