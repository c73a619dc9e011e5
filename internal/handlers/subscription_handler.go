package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func CreateSubscription(ss *services.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		result, err := ss.CreatePlanSubscription(c.Request.Context(), id.UserID, c.Param("plan"))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result))
	}
}

// RazorpayWebhook authenticates the callback against the raw body before any
// parsing happens.
func RazorpayWebhook(ss *services.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			fail(c, models.BadRequest("failed to read webhook body"))
			return
		}

		signature := c.GetHeader("X-Razorpay-Signature")
		if signature == "" || !ss.VerifyWebhookSignature(body, signature) {
			fail(c, models.Unauthorized("Invalid webhook signature"))
			return
		}

		if err := ss.HandleWebhookEvent(c.Request.Context(), body); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil))
	}
}
