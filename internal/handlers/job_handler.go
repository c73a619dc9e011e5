package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskbay/api/internal/models"
	"github.com/taskbay/api/internal/services"
)

func CreateJob(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var dto models.CreateJobPostDto
		if err := c.ShouldBindJSON(&dto); err != nil {
			fail(c, models.BadRequest("Invalid job post data"))
			return
		}

		job, err := js.CreateJob(c.Request.Context(), id.UserID, &dto)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessWithMessage("Job post created successfully", job))
	}
}

func ListJobs(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query services.ListJobsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			fail(c, models.BadRequest("Invalid query parameters"))
			return
		}

		jobs, pagination, err := js.ListJobs(c.Request.Context(), query)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"jobs":       jobs,
			"pagination": pagination,
		}))
	}
}

func GetJobByID(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := js.GetJobByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(job))
	}
}

func MyPostedJobs(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var query struct {
			Page  int64 `form:"page"`
			Limit int64 `form:"limit"`
		}
		if err := c.ShouldBindQuery(&query); err != nil {
			fail(c, models.BadRequest("Invalid query parameters"))
			return
		}

		jobs, pagination, err := js.MyPostedJobs(c.Request.Context(), id.UserID, query.Page, query.Limit)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"jobs":       jobs,
			"pagination": pagination,
		}))
	}
}

func ApplyToJob(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		if err := js.Apply(c.Request.Context(), id.UserID, c.Param("id")); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Application submitted", nil))
	}
}

func UpdateJobStatus(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, models.BadRequest("status is required"))
			return
		}

		if err := js.UpdateStatus(c.Request.Context(), id.UserID, c.Param("id"), req.Status); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Job status updated", nil))
	}
}

func DeleteJob(js *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}

		if err := js.DeleteJob(c.Request.Context(), id.UserID, c.Param("id")); err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessWithMessage("Job post deleted", nil))
	}
}
