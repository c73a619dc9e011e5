package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func ListCategories(cs *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := cs.ListCategories(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(categories))
	}
}

func ListSubcategories(cs *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := cs.ListSubcategories(c.Request.Context(), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(subs))
	}
}
