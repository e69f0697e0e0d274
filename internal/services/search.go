package services

import (
  "context"
  "fmt"
  "sort"
  "strings"

  "gorm.io/gorm"

  "github.com/shopmuse/shopmuse-backend/internal/catalog"
  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/types"
)

type SearchService interface {
  // Search matches query words against product names, descriptions and
  // tags. maxPrice of zero means no price ceiling.
  Search(ctx context.Context, query string, maxPrice float64, limit int) ([]*types.Product, error)
  // Trending ranks products by interaction volume across all sessions,
  // breaking ties with popular tags and rating.
  Trending(ctx context.Context, limit int) ([]*types.Product, error)
}

type searchService struct {
  db              *gorm.DB
  log             *logger.Logger
  productRepo     repos.ProductRepo
  interactionRepo repos.InteractionRepo
}

func NewSearchService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, interactionRepo repos.InteractionRepo) SearchService {
  return &searchService{
    db:              db,
    log:             baseLog.With("service", "SearchService"),
    productRepo:     productRepo,
    interactionRepo: interactionRepo,
  }
}

func (ss *searchService) Search(ctx context.Context, query string, maxPrice float64, limit int) ([]*types.Product, error) {
  query = strings.TrimSpace(strings.ToLower(query))
  if query == "" {
    return nil, fmt.Errorf("search query must not be empty")
  }
  if limit <= 0 {
    limit = 10
  }

  products, err := ss.productRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("list products: %w", err)
  }

  words := strings.Fields(query)

  type match struct {
    product *types.Product
    hits    int
  }
  var matches []match
  for _, p := range products {
    if maxPrice > 0 && p.Price > maxPrice {
      continue
    }
    hits := matchHits(p, words)
    if hits > 0 {
      matches = append(matches, match{p, hits})
    }
  }

  sort.SliceStable(matches, func(i, j int) bool {
    if matches[i].hits != matches[j].hits {
      return matches[i].hits > matches[j].hits
    }
    return matches[i].product.Rating > matches[j].product.Rating
  })
  if len(matches) > limit {
    matches = matches[:limit]
  }

  results := make([]*types.Product, 0, len(matches))
  for _, m := range matches {
    results = append(results, m.product)
  }
  return results, nil
}

// matchHits counts query words that appear in the product's name,
// description, category or tags.
func matchHits(p *types.Product, words []string) int {
  name := strings.ToLower(p.Name)
  desc := strings.ToLower(p.Description)
  category := strings.ToLower(p.Category)

  hits := 0
  for _, w := range words {
    if strings.Contains(name, w) || strings.Contains(desc, w) || strings.Contains(category, w) {
      hits++
      continue
    }
    for _, tag := range p.Tags {
      if strings.Contains(strings.ToLower(tag), w) {
        hits++
        break
      }
    }
  }
  return hits
}

func (ss *searchService) Trending(ctx context.Context, limit int) ([]*types.Product, error) {
  if limit <= 0 {
    limit = 5
  }

  products, err := ss.productRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("list products: %w", err)
  }
  counts, err := ss.interactionRepo.CountByProduct(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("count interactions: %w", err)
  }

  scored := make([]*types.Product, len(products))
  copy(scored, products)
  trendScore := func(p *types.Product) float64 {
    score := float64(counts[p.ID]) * 10
    for _, tag := range catalog.PopularTags {
      if p.HasTag(tag) {
        score += 5
        break
      }
    }
    return score + p.Rating
  }
  sort.SliceStable(scored, func(i, j int) bool {
    return trendScore(scored[i]) > trendScore(scored[j])
  })

  if len(scored) > limit {
    scored = scored[:limit]
  }
  return scored, nil
}
