package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func CreateWorkerProfile(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var dto models.CreateWorkerProfileDto
		if err := c.ShouldBindJSON(&dto); err != nil {
			fail(c, models.BadRequest("Invalid worker profile data"))
			return
		}

		profile, err := ws.CreateProfile(c.Request.Context(), id.UserID, &dto)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessWithMessage(
			"Worker profile created successfully",
			gin.H{"worker_id": profile.ID.Hex()},
		))
	}
}

func GetWorkerProfile(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		profile, err := ws.GetProfileByUserID(c.Request.Context(), id.UserID)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile))
	}
}

func UpdateWorkerProfile(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var dto models.UpdateWorkerProfileDto
		if err := c.ShouldBindJSON(&dto); err != nil {
			fail(c, models.BadRequest("Invalid worker profile data"))
			return
		}

		if err := ws.UpdateProfile(c.Request.Context(), id.UserID, &dto); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Worker profile updated successfully", nil))
	}
}

func DeleteWorkerProfile(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		if err := ws.DeleteProfile(c.Request.Context(), id.UserID); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Worker profile deleted successfully", nil))
	}
}

func SearchWorkers(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query services.SearchWorkersQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			fail(c, models.BadRequest("Invalid search parameters"))
			return
		}

		workers, pagination, err := ws.Search(c.Request.Context(), query)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"workers":    workers,
			"pagination": pagination,
		}))
	}
}

func NearbyWorkers(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query services.NearbyWorkersQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			fail(c, models.BadRequest("latitude and longitude are required"))
			return
		}

		workers, pagination, err := ws.Nearby(c.Request.Context(), query)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"workers":    workers,
			"pagination": pagination,
		}))
	}
}

func GetWorkerByID(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := ws.GetWorkerByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile))
	}
}

func UpdateWorkerLocation(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var dto models.UpdateLocationDto
		if err := c.ShouldBindJSON(&dto); err != nil {
			fail(c, models.BadRequest("latitude and longitude are required"))
			return
		}

		if err := ws.UpdateLocation(c.Request.Context(), id.UserID, &dto); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Location updated successfully", nil))
	}
}

func WorkerStats(ws *services.WorkerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query struct {
			Page  int64 `form:"page"`
			Limit int64 `form:"limit"`
		}
		if err := c.ShouldBindQuery(&query); err != nil {
			fail(c, models.BadRequest("Invalid query parameters"))
			return
		}

		result, err := ws.Stats(c.Request.Context(), query.Page, query.Limit)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result))
	}
}
