package services

import (
	"context"
	"log/slog"

	"github.com/taskbay/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviews models.ReviewRepo
	workers models.WorkerRepo
	logger  *slog.Logger
}

func NewReviewService(reviews models.ReviewRepo, workers models.WorkerRepo, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		workers: workers,
		logger:  logger,
	}
}

func (rs *ReviewService) CreateReview(ctx context.Context, userID primitive.ObjectID, workerID string, dto *models.CreateReviewDto) (*models.Review, error) {
	wid, err := primitive.ObjectIDFromHex(workerID)
	if err != nil {
		return nil, models.BadRequest("Invalid worker ID")
	}

	worker, err := rs.workers.GetWorkerByID(ctx, wid)
	if err != nil {
		return nil, models.InternalError("Failed to load worker")
	}
	if worker == nil {
		return nil, models.NotFound("Worker not found")
	}

	review := &models.Review{
		WorkerID: wid,
		UserID:   userID,
		Rating:   dto.Rating,
		Comment:  dto.Comment,
	}
	review.Sanitize()

	created, err := rs.reviews.CreateReview(ctx, review)
	if err != nil {
		return nil, models.InternalError("Failed to create review")
	}

	rs.recomputeAggregate(ctx, wid)
	return created, nil
}

func (rs *ReviewService) ListWorkerReviews(ctx context.Context, workerID string) ([]models.Review, error) {
	wid, err := primitive.ObjectIDFromHex(workerID)
	if err != nil {
		return nil, models.BadRequest("Invalid worker ID")
	}

	reviews, err := rs.reviews.GetReviewsByWorker(ctx, wid)
	if err != nil {
		return nil, models.InternalError("Failed to list reviews")
	}
	return reviews, nil
}

// DeleteReview removes a review written by the caller and refreshes the
// worker's rating aggregate.
func (rs *ReviewService) DeleteReview(ctx context.Context, userID primitive.ObjectID, reviewID string) error {
	rid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return models.BadRequest("Invalid review ID")
	}

	review, err := rs.reviews.GetReviewByID(ctx, rid)
	if err != nil {
		return models.InternalError("Failed to load review")
	}
	if review == nil {
		return models.NotFound("Review not found")
	}

	deleted, err := rs.reviews.DeleteReview(ctx, rid, userID)
	if err != nil {
		return models.InternalError("Failed to delete review")
	}
	if !deleted {
		return models.Forbidden("You can only delete your own reviews")
	}

	rs.recomputeAggregate(ctx, review.WorkerID)
	return nil
}

// recomputeAggregate refreshes the running average on the profile. Best
// effort: the review write has already committed.
func (rs *ReviewService) recomputeAggregate(ctx context.Context, workerID primitive.ObjectID) {
	rating, count, err := rs.reviews.RatingAggregate(ctx, workerID)
	if err != nil {
		rs.logger.Warn("failed to recompute rating aggregate", "worker_id", workerID.Hex(), "error", err)
		return
	}
	if err := rs.workers.SetRatingAggregate(ctx, workerID, rating, count); err != nil {
		rs.logger.Warn("failed to store rating aggregate", "worker_id", workerID.Hex(), "error", err)
	}
}
