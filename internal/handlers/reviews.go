package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
)

// ReviewStore reads and writes product reviews.
type ReviewStore interface {
	ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	InsertReview(ctx context.Context, review models.Review) (int64, error)
}

type createReviewRequest struct {
	ProductID    int64  `json:"productId" binding:"required"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

func GetReviews(store ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/reviews"
		defer handlePanic(c, route)

		productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
		if err != nil || productID < 1 {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		reviews, err := store.ListReviewsByProduct(ctx, productID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews, "timestamp": nowStamp()})
	}
}

func CreateReview(store ReviewStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/reviews"
		defer handlePanic(c, route)

		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := store.InsertReview(ctx, models.Review{
			ProductID:    req.ProductID,
			CustomerName: req.CustomerName,
			Rating:       req.Rating,
			Comment:      req.Comment,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "reviewId": id, "timestamp": nowStamp()})
	}
}
