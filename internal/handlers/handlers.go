package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/middleware"
	"github.com/taskbay/api/internal/models"
)

func fail(c *gin.Context, err error) {
	apiErr := models.AsApiError(err)
	c.JSON(apiErr.Status, models.ErrorResponse(apiErr.Message))
}

func identity(c *gin.Context) (*middleware.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		fail(c, models.Unauthorized("Unauthorized"))
		return nil, false
	}
	return id, true
}
