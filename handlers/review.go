package handlers

import (
	"errors"
	"net/http"

	"hormelys/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler serves the Google reviews proxy.
type ReviewHandler struct {
	Svc review.Service
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

// GoogleReviews returns the practice's Google reviews.
// GET /api/reviews/google-reviews
func (h *ReviewHandler) GoogleReviews(c *gin.Context) {
	reviews, err := h.Svc.GoogleReviews()
	if err != nil {
		if errors.Is(err, review.ErrNoReviews) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No reviews found for this place."})
			return
		}
		getLogger(c).Error("failed to fetch Google reviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
