package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func GetProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		user, err := us.GetProfile(c.Request.Context(), id.UserID)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user.ToResponse()))
	}
}

func UpdateProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var dto models.UpdateProfileDto
		if err := c.ShouldBindJSON(&dto); err != nil {
			fail(c, models.BadRequest("Invalid profile data"))
			return
		}

		user, err := us.UpdateProfile(c.Request.Context(), id.UserID, &dto)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Profile updated successfully", user.ToResponse()))
	}
}

func UploadProfilePhoto(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			fail(c, models.BadRequest("photo file is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			fail(c, models.BadRequest("failed to read photo file"))
			return
		}
		defer file.Close()

		url, err := us.UploadProfilePhoto(c.Request.Context(), id.UserID, file)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Photo uploaded successfully", gin.H{"url": url}))
	}
}

func UpdateFcmToken(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var token models.FcmToken
		if err := c.ShouldBindJSON(&token); err != nil {
			fail(c, models.BadRequest("Invalid FCM token payload"))
			return
		}

		if err := us.UpdateFcmToken(c.Request.Context(), id.UserID, &token); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("FCM token updated", nil))
	}
}

// DeleteAccount deactivates the account; the record itself stays.
func DeleteAccount(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		if err := us.DeactivateAccount(c.Request.Context(), id.UserID); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Account deactivated", nil))
	}
}

func SubmitKyc(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("document")
		if err != nil {
			fail(c, models.BadRequest("document file is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			fail(c, models.BadRequest("failed to read document file"))
			return
		}
		defer file.Close()

		url, err := us.SubmitKyc(c.Request.Context(), id.UserID, file)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("KYC submitted for review", gin.H{"document_url": url}))
	}
}

func GetKycStatus(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		status, err := us.GetKycStatus(c.Request.Context(), id.UserID)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"kyc_status": status}))
	}
}

// UpdateKycStatus is the admin review decision for a submitted KYC.
func UpdateKycStatus(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, models.BadRequest("status is required"))
			return
		}

		if err := us.UpdateKycStatus(c.Request.Context(), c.Param("user_id"), req.Status); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("KYC status updated", nil))
	}
}
