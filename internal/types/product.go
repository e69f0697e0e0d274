package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Product is a catalog entry. The catalog is seeded once at startup and
// treated as read-only afterwards.
type Product struct {
  ID          uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string                       `gorm:"not null;column:name;index" json:"name"`
  Description string                       `gorm:"column:description" json:"description"`
  Price       float64                      `gorm:"not null;column:price;index" json:"price"`
  Category    string                       `gorm:"not null;column:category;index" json:"category"`
  Brand       string                       `gorm:"column:brand" json:"brand"`
  Rating      float64                      `gorm:"column:rating" json:"rating"`
  ImageURL    string                       `gorm:"column:image_url" json:"image_url"`
  Tags        datatypes.JSONSlice[string]  `gorm:"column:tags" json:"tags"`
  CreatedAt   time.Time                    `gorm:"not null" json:"created_at"`
}

func (Product) TableName() string { return "product" }

func (p *Product) HasTag(tag string) bool {
  for _, t := range p.Tags {
    if t == tag {
      return true
    }
  }
  return false
}
