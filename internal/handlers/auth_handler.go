package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func SendOtp(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Mobile string `json:"mobile" binding:"required"`
			Email  string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, models.BadRequest("Invalid request payload"))
			return
		}

		if err := as.SendOtp(c.Request.Context(), req.Mobile, req.Email); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("OTP sent successfully", nil))
	}
}

func ResendOtp(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Mobile string `json:"mobile" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, models.BadRequest("Invalid request payload"))
			return
		}

		if err := as.ResendOtp(c.Request.Context(), req.Mobile); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("OTP resent successfully", nil))
	}
}

func VerifyOtp(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Mobile string `json:"mobile" binding:"required"`
			Otp    string `json:"otp" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, models.BadRequest("Invalid request payload"))
			return
		}

		result, err := as.VerifyOtp(c.Request.Context(), req.Mobile, req.Otp)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result))
	}
}

// RefreshToken mints a new access token from the bearer refresh token.
func RefreshToken(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			fail(c, models.Unauthorized("Authorization header missing or invalid"))
			return
		}

		accessToken, err := as.RefreshToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"accessToken": accessToken}))
	}
}
