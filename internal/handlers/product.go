package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/shopmuse/shopmuse-backend/internal/logger"
  "github.com/shopmuse/shopmuse-backend/internal/repos"
  "github.com/shopmuse/shopmuse-backend/internal/services"
)

type ProductHandler struct {
  log           *logger.Logger
  productRepo   repos.ProductRepo
  searchService services.SearchService
}

func NewProductHandler(log *logger.Logger, productRepo repos.ProductRepo, searchService services.SearchService) *ProductHandler {
  return &ProductHandler{
    log:           log.With("handler", "ProductHandler"),
    productRepo:   productRepo,
    searchService: searchService,
  }
}

func (h *ProductHandler) List(c *gin.Context) {
  if category := c.Query("category"); category != "" {
    products, err := h.productRepo.ListByCategory(c.Request.Context(), nil, category)
    if err != nil {
      h.log.Error("List by category failed", "error", err, "category", category)
      RespondError(c, http.StatusInternalServerError, "list_products_failed", err)
      return
    }
    RespondOK(c, gin.H{"products": products})
    return
  }

  products, err := h.productRepo.List(c.Request.Context(), nil)
  if err != nil {
    h.log.Error("List products failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "list_products_failed", err)
    return
  }
  RespondOK(c, gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
    return
  }

  product, err := h.productRepo.GetByID(c.Request.Context(), nil, productID)
  if err != nil {
    RespondError(c, http.StatusNotFound, "product_not_found", err)
    return
  }
  RespondOK(c, gin.H{"product": product})
}

func (h *ProductHandler) Search(c *gin.Context) {
  query := c.Query("q")
  maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
  limit, _ := strconv.Atoi(c.Query("limit"))

  products, err := h.searchService.Search(c.Request.Context(), query, maxPrice, limit)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "search_failed", err)
    return
  }
  RespondOK(c, gin.H{"products": products})
}

func (h *ProductHandler) Trending(c *gin.Context) {
  limit, _ := strconv.Atoi(c.Query("limit"))

  products, err := h.searchService.Trending(c.Request.Context(), limit)
  if err != nil {
    h.log.Error("Trending lookup failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "trending_failed", err)
    return
  }
  RespondOK(c, gin.H{"products": products})
}
