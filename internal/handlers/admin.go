package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"backend/internal/cache"
	"backend/internal/database"
)

type adminLoginRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

type updatePriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// AdminLogin exchanges the shared access code for a short-lived admin token.
func AdminLogin(accessCode, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/login"
		defer handlePanic(c, route)

		if accessCode == "" || jwtSecret == "" {
			respondWithError(c, http.StatusServiceUnavailable, route, "admin access not configured")
			return
		}

		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.AccessCode), []byte(accessCode)) != 1 {
			respondWithError(c, http.StatusUnauthorized, route, "invalid access code")
			return
		}

		claims := jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(accessTTL).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": signed, "timestamp": nowStamp()})
	}
}

// UpdateProductPrice changes a product's price and eagerly drops the cached
// product list so the new price is visible immediately.
func UpdateProductPrice(store ProductStore, productCache *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id/price"
		defer handlePanic(c, route)

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id < 1 {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updatePriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = store.UpdateProductPrice(ctx, id, req.Price)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "Product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		productCache.Invalidate()
		log.Printf("[%s] price updated for product %d, cache invalidated", route, id)

		c.JSON(http.StatusOK, gin.H{"success": true, "timestamp": nowStamp()})
	}
}
