package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/cache"
	"backend/internal/database"
	"backend/internal/models"
)

// ProductStore is the catalog read/write surface used by handlers.
type ProductStore interface {
	ListProducts(ctx context.Context, filter database.ProductFilter) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProductPrice(ctx context.Context, id int64, price float64) error
}

/*
GET /api/products
- page + limit optional; without them the full list is returned
- the unfiltered full list is served from a 30s cache
*/
func GetProducts(store ProductStore, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		filter := database.ProductFilter{
			Category: c.Query("category"),
			Featured: c.Query("featured") == "true",
		}

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}
			filter.Limit = limit
			filter.Offset = (page - 1) * limit
		}

		if filter.Empty() {
			if products, ok := productCache.Get(); ok {
				log.Printf("[%s] serving %d products from cache", route, len(products))
				c.JSON(http.StatusOK, gin.H{"success": true, "data": products, "timestamp": nowStamp()})
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		products, err := store.ListProducts(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if filter.Empty() {
			productCache.Set(products)
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products, "timestamp": nowStamp()})
	}
}

func GetProductBySlug(store ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/:slug"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, err := store.GetProductBySlug(ctx, c.Param("slug"))
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product, "timestamp": nowStamp()})
	}
}
