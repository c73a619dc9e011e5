package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var dto models.CreateReviewDto
		if err := c.ShouldBindJSON(&dto); err != nil {
			fail(c, models.BadRequest("rating must be between 1 and 5"))
			return
		}

		review, err := rs.CreateReview(c.Request.Context(), id.UserID, c.Param("id"), &dto)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessWithMessage("Review created", review))
	}
}

func ListWorkerReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := rs.ListWorkerReviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews))
	}
}

func DeleteReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		if err := rs.DeleteReview(c.Request.Context(), id.UserID, c.Param("id")); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Review deleted", nil))
	}
}
