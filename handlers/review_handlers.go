package handlers

import (
	"net/http"

	"FoodOrder/services"

	"github.com/gin-gonic/gin"
)

func GetReviewListHandler(c *gin.Context, reviews *services.ReviewService) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := reviews.ListReviews(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]reviewResponse, 0, len(list))
	for _, review := range list {
		out = append(out, newReviewResponse(review))
	}
	c.JSON(http.StatusOK, out)
}

func AddReviewHandler(c *gin.Context, reviews *services.ReviewService) {
	customerID, ok := caller(c)
	if !ok {
		return
	}
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := reviews.AddReview(c.Request.Context(), customerID, restaurantID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newReviewResponse(*review))
}
