package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NearbyRadiusMeters is the fixed search radius for the nearby endpoint; the
// caller cannot widen it.
const NearbyRadiusMeters = 10000

type WorkerService struct {
	workers models.WorkerRepo
}

func NewWorkerService(workers models.WorkerRepo) *WorkerService {
	return &WorkerService{workers: workers}
}

func (ws *WorkerService) CreateProfile(ctx context.Context, userID primitive.ObjectID, dto *models.CreateWorkerProfileDto) (*models.WorkerProfile, error) {
	if err := models.Validate.Struct(dto); err != nil {
		return nil, models.BadRequest("Invalid worker profile data")
	}

	var location *models.GeoLocation
	if dto.Latitude != nil && dto.Longitude != nil {
		if err := models.ValidateCoordinates(*dto.Latitude, *dto.Longitude); err != nil {
			return nil, models.BadRequest(err.Error())
		}
		point := models.NewGeoPoint(*dto.Longitude, *dto.Latitude)
		location = &point
	}

	now := time.Now()
	profile := &models.WorkerProfile{
		UserID:           userID,
		Categories:       dto.Categories,
		Subcategories:    dto.Subcategories,
		ExperienceYears:  dto.ExperienceYears,
		Description:      dto.Description,
		HourlyRate:       dto.HourlyRate,
		LicenseNumber:    dto.LicenseNumber,
		ServiceAreas:     dto.ServiceAreas,
		SubscriptionPlan: models.PlanNone,
		SubscriptionRank: models.PlanNone.Rank(),
		IsVerified:       false,
		IsAvailable:      true,
		Location:         location,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := ws.workers.CreateWorkerProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateProfile) {
			return nil, models.Conflict("Worker profile already exists")
		}
		return nil, models.InternalError("Failed to create worker profile")
	}
	return created, nil
}

func (ws *WorkerService) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.WorkerProfile, error) {
	profile, err := ws.workers.GetWorkerByUserID(ctx, userID)
	if err != nil {
		return nil, models.InternalError("Failed to load worker profile")
	}
	if profile == nil {
		return nil, models.NotFound("Worker profile not found")
	}
	return profile, nil
}

func (ws *WorkerService) GetWorkerByID(ctx context.Context, workerID string) (*models.WorkerProfile, error) {
	id, err := primitive.ObjectIDFromHex(workerID)
	if err != nil {
		return nil, models.BadRequest("Invalid worker ID")
	}

	profile, err := ws.workers.GetWorkerByID(ctx, id)
	if err != nil {
		return nil, models.InternalError("Failed to load worker profile")
	}
	if profile == nil {
		return nil, models.NotFound("Worker not found")
	}
	return profile, nil
}

// UpdateProfile merges only the fields present in the dto.
func (ws *WorkerService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, dto *models.UpdateWorkerProfileDto) error {
	fields := bson.M{}
	if dto.Categories != nil {
		fields["categories"] = *dto.Categories
	}
	if dto.Subcategories != nil {
		fields["subcategories"] = *dto.Subcategories
	}
	if dto.ExperienceYears != nil {
		if *dto.ExperienceYears < 0 {
			return models.BadRequest("Experience years cannot be negative")
		}
		fields["experience_years"] = *dto.ExperienceYears
	}
	if dto.Description != nil {
		fields["description"] = *dto.Description
	}
	if dto.HourlyRate != nil {
		if *dto.HourlyRate < 0 {
			return models.BadRequest("Hourly rate cannot be negative")
		}
		fields["hourly_rate"] = *dto.HourlyRate
	}
	if dto.ServiceAreas != nil {
		fields["service_areas"] = *dto.ServiceAreas
	}
	if dto.IsAvailable != nil {
		fields["is_available"] = *dto.IsAvailable
	}

	matched, err := ws.workers.UpdateWorkerProfile(ctx, userID, fields)
	if err != nil {
		return models.InternalError("Failed to update worker profile")
	}
	if !matched {
		return models.NotFound("Worker profile not found")
	}
	return nil
}

func (ws *WorkerService) DeleteProfile(ctx context.Context, userID primitive.ObjectID) error {
	deleted, err := ws.workers.DeleteWorkerProfile(ctx, userID)
	if err != nil {
		return models.InternalError("Failed to delete worker profile")
	}
	if !deleted {
		return models.NotFound("Worker profile not found")
	}
	return nil
}

type SearchWorkersQuery struct {
	Category    string  `form:"category"`
	Subcategory string  `form:"subcategory"`
	City        string  `form:"city"`
	MinRating   float64 `form:"min_rating"`
	Page        int64   `form:"page"`
	Limit       int64   `form:"limit"`
}

// Search lists verified, available workers matching the composed filter,
// ordered by paid tier, then rating, then review count.
func (ws *WorkerService) Search(ctx context.Context, query SearchWorkersQuery) ([]models.WorkerProfile, models.Pagination, error) {
	page := models.ClampPage(query.Page)
	limit := models.ClampLimit(query.Limit, models.MaxSearchLimit)

	filter := models.NewWorkerFilter().
		PublicBaseline().
		Category(query.Category).
		Subcategory(query.Subcategory).
		ServiceArea(query.City).
		MinRating(query.MinRating).
		Build()

	workers, total, err := ws.workers.QueryWorkers(ctx, models.WorkerQuery{
		Filter: filter,
		Sort:   models.TierSort(),
		Skip:   (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, models.Pagination{}, models.InternalError("Failed to search workers")
	}

	return workers, models.NewPagination(page, limit, total), nil
}

type NearbyWorkersQuery struct {
	Latitude    float64 `form:"latitude" binding:"required"`
	Longitude   float64 `form:"longitude" binding:"required"`
	Category    string  `form:"category"`
	Subcategory string  `form:"subcategory"`
	Page        int64   `form:"page"`
	Limit       int64   `form:"limit"`
}

// Nearby lists verified, available workers within 10 km of the given point.
// Results keep the proximity order of the geospatial query; the tier sort is
// not applied here.
func (ws *WorkerService) Nearby(ctx context.Context, query NearbyWorkersQuery) ([]models.WorkerProfile, models.Pagination, error) {
	if err := models.ValidateCoordinates(query.Latitude, query.Longitude); err != nil {
		return nil, models.Pagination{}, models.BadRequest(err.Error())
	}

	page := models.ClampPage(query.Page)
	limit := models.ClampLimit(query.Limit, models.MaxNearbyLimit)

	filter := models.NewWorkerFilter().
		PublicBaseline().
		Category(query.Category).
		Subcategory(query.Subcategory).
		NearPoint(query.Longitude, query.Latitude, NearbyRadiusMeters).
		Build()

	countFilter := models.NewWorkerFilter().
		PublicBaseline().
		Category(query.Category).
		Subcategory(query.Subcategory).
		WithinRadius(query.Longitude, query.Latitude, NearbyRadiusMeters).
		Build()

	workers, total, err := ws.workers.QueryWorkers(ctx, models.WorkerQuery{
		Filter:      filter,
		CountFilter: countFilter,
		Skip:        (page - 1) * limit,
		Limit:       limit,
	})
	if err != nil {
		return nil, models.Pagination{}, models.InternalError("Failed to find nearby workers")
	}

	return workers, models.NewPagination(page, limit, total), nil
}

// UpdateLocation validates coordinates before any store write.
func (ws *WorkerService) UpdateLocation(ctx context.Context, userID primitive.ObjectID, dto *models.UpdateLocationDto) error {
	if err := models.ValidateCoordinates(dto.Latitude, dto.Longitude); err != nil {
		return models.BadRequest(err.Error())
	}

	matched, err := ws.workers.UpdateWorkerLocation(ctx, userID, models.NewGeoPoint(dto.Longitude, dto.Latitude))
	if err != nil {
		return models.InternalError("Failed to update location")
	}
	if !matched {
		return models.NotFound("Worker profile not found")
	}
	return nil
}

type WorkerStatsResult struct {
	Stats      *models.WorkerStats    `json:"stats"`
	Workers    []models.WorkerProfile `json:"workers"`
	Pagination models.Pagination      `json:"pagination"`
}

func (ws *WorkerService) Stats(ctx context.Context, page, limit int64) (*WorkerStatsResult, error) {
	page = models.ClampPage(page)
	limit = models.ClampLimit(limit, models.MaxSearchLimit)

	stats, err := ws.workers.GetWorkerStats(ctx)
	if err != nil {
		return nil, models.InternalError("Failed to load worker stats")
	}

	workers, _, err := ws.workers.QueryWorkers(ctx, models.WorkerQuery{
		Filter: bson.M{},
		Sort:   bson.D{{Key: "created_at", Value: -1}},
		Skip:   (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, models.InternalError("Failed to list workers")
	}

	return &WorkerStatsResult{
		Stats:      stats,
		Workers:    workers,
		Pagination: models.NewPagination(page, limit, stats.TotalWorkers),
	}, nil
}
