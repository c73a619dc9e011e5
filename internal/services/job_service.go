package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobService owns the job-post lifecycle: posts are created pending, only
// approved posts are publicly listed, and applications are one per user.
type JobService struct {
	jobs models.JobRepo
}

func NewJobService(jobs models.JobRepo) *JobService {
	return &JobService{jobs: jobs}
}

func (js *JobService) CreateJob(ctx context.Context, posterID primitive.ObjectID, dto *models.CreateJobPostDto) (*models.JobPost, error) {
	if err := models.Validate.Struct(dto); err != nil {
		return nil, models.BadRequest("Invalid job post data")
	}
	if dto.SalaryMin != nil && *dto.SalaryMin < 0 {
		return nil, models.BadRequest("Salary cannot be negative")
	}
	if dto.SalaryMin != nil && dto.SalaryMax != nil && *dto.SalaryMax < *dto.SalaryMin {
		return nil, models.BadRequest("Maximum salary cannot be below minimum salary")
	}

	now := time.Now()
	job := &models.JobPost{
		PostedBy:           posterID,
		Title:              dto.Title,
		CompanyName:        dto.CompanyName,
		CompanyBrief:       dto.CompanyBrief,
		JobRole:            dto.JobRole,
		Eligibility:        dto.Eligibility,
		Requirements:       dto.Requirements,
		SalaryMin:          dto.SalaryMin,
		SalaryMax:          dto.SalaryMax,
		Location:           dto.Location,
		HrName:             dto.HrName,
		HrEmail:            dto.HrEmail,
		HrContact:          dto.HrContact,
		CompanyDocumentURL: dto.CompanyDocumentURL,
		Status:             models.JobPending,
		Applications:       []primitive.ObjectID{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := js.jobs.CreateJob(ctx, job)
	if err != nil {
		return nil, models.InternalError("Failed to create job post")
	}
	return created, nil
}

type ListJobsQuery struct {
	Role     string `form:"role"`
	Location string `form:"location"`
	Page     int64  `form:"page"`
	Limit    int64  `form:"limit"`
}

// ListJobs returns approved posts only, newest first.
func (js *JobService) ListJobs(ctx context.Context, query ListJobsQuery) ([]models.JobPost, models.Pagination, error) {
	page := models.ClampPage(query.Page)
	limit := models.ClampLimit(query.Limit, models.MaxSearchLimit)

	filter := bson.M{"status": models.JobApproved}
	if query.Role != "" {
		filter["job_role"] = query.Role
	}
	if query.Location != "" {
		filter["location"] = query.Location
	}

	jobs, total, err := js.jobs.QueryJobs(ctx, models.JobQuery{
		Filter: filter,
		Skip:   (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, models.Pagination{}, models.InternalError("Failed to list jobs")
	}

	return jobs, models.NewPagination(page, limit, total), nil
}

func (js *JobService) GetJobByID(ctx context.Context, jobID string) (*models.JobPost, error) {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, models.BadRequest("Invalid job ID")
	}

	job, err := js.jobs.GetJobByID(ctx, id)
	if err != nil {
		return nil, models.InternalError("Failed to load job post")
	}
	if job == nil {
		return nil, models.NotFound("Job not found")
	}
	return job, nil
}

func (js *JobService) MyPostedJobs(ctx context.Context, posterID primitive.ObjectID, page, limit int64) ([]models.JobPost, models.Pagination, error) {
	page = models.ClampPage(page)
	limit = models.ClampLimit(limit, models.MaxSearchLimit)

	jobs, total, err := js.jobs.QueryJobs(ctx, models.JobQuery{
		Filter: bson.M{"posted_by": posterID},
		Skip:   (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, models.Pagination{}, models.InternalError("Failed to list posted jobs")
	}

	return jobs, models.NewPagination(page, limit, total), nil
}

// Apply records the caller's application on an approved post. Applying twice
// is a conflict, not a second application.
func (js *JobService) Apply(ctx context.Context, userID primitive.ObjectID, jobID string) error {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return models.BadRequest("Invalid job ID")
	}

	job, err := js.jobs.GetJobByID(ctx, id)
	if err != nil {
		return models.InternalError("Failed to load job post")
	}
	if job == nil {
		return models.NotFound("Job not found")
	}
	if job.Status != models.JobApproved {
		return models.Forbidden("Job is not open for applications")
	}

	added, err := js.jobs.AddApplication(ctx, id, userID)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyApplied) {
			return models.Conflict("You have already applied to this job")
		}
		return models.InternalError("Failed to apply to job")
	}
	if !added {
		return models.NotFound("Job not found")
	}
	return nil
}

// UpdateStatus moves a post the caller owns through pending/approved/inactive.
func (js *JobService) UpdateStatus(ctx context.Context, posterID primitive.ObjectID, jobID, status string) error {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return models.BadRequest("Invalid job ID")
	}
	if !models.ValidJobStatus(status) {
		return models.BadRequest("Invalid status. Use 'pending', 'approved' or 'inactive'")
	}

	matched, err := js.jobs.SetJobStatus(ctx, id, posterID, models.JobStatus(status))
	if err != nil {
		return models.InternalError("Failed to update job status")
	}
	if !matched {
		return models.NotFound("Job not found")
	}
	return nil
}

func (js *JobService) DeleteJob(ctx context.Context, posterID primitive.ObjectID, jobID string) error {
	id, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return models.BadRequest("Invalid job ID")
	}

	deleted, err := js.jobs.DeleteJob(ctx, id, posterID)
	if err != nil {
		return models.InternalError("Failed to delete job post")
	}
	if !deleted {
		return models.NotFound("Job not found")
	}
	return nil
}
