package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WorkersColName = "worker_profiles"

var ErrDuplicateProfile = errors.New("worker profile already exists")

// WorkerQuery is one planned query: the page filter, an optional separate
// count filter (count queries cannot use $nearSphere, so the nearby planner
// supplies a $geoWithin equivalent), the sort keys, and the page window.
type WorkerQuery struct {
	Filter      bson.M
	CountFilter bson.M
	Sort        bson.D
	Skip        int64
	Limit       int64
}

type WorkerStats struct {
	TotalWorkers      int64 `json:"total_workers"`
	VerifiedWorkers   int64 `json:"verified_workers"`
	AvailableWorkers  int64 `json:"available_workers"`
	SilverSubscribers int64 `json:"silver_subscribers"`
	GoldSubscribers   int64 `json:"gold_subscribers"`
}

type WorkerRepo interface {
	CreateWorkerProfile(ctx context.Context, profile *WorkerProfile) (*WorkerProfile, error)
	GetWorkerByUserID(ctx context.Context, userID primitive.ObjectID) (*WorkerProfile, error)
	GetWorkerByID(ctx context.Context, id primitive.ObjectID) (*WorkerProfile, error)
	UpdateWorkerProfile(ctx context.Context, userID primitive.ObjectID, fields bson.M) (bool, error)
	DeleteWorkerProfile(ctx context.Context, userID primitive.ObjectID) (bool, error)
	QueryWorkers(ctx context.Context, query WorkerQuery) ([]WorkerProfile, int64, error)
	UpdateWorkerLocation(ctx context.Context, userID primitive.ObjectID, location GeoLocation) (bool, error)
	SetWorkerSubscription(ctx context.Context, userID primitive.ObjectID, plan SubscriptionPlan, expiresAt time.Time) (bool, error)
	SetRatingAggregate(ctx context.Context, workerID primitive.ObjectID, rating float64, totalReviews int) error
	GetWorkerStats(ctx context.Context) (*WorkerStats, error)
}

func (mdb *MongodbRepo) CreateWorkerProfile(ctx context.Context, profile *WorkerProfile) (*WorkerProfile, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return nil, err
	}

	// Fast-path existence check; the unique index on user_id is what actually
	// makes this race-free.
	count, err := col.CountDocuments(ctx, bson.M{"user_id": profile.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateProfile
	}

	res, err := col.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateProfile
		}
		return nil, fmt.Errorf("failed to insert worker profile: %w", err)
	}

	profile.ID = res.InsertedID.(primitive.ObjectID)
	return profile, nil
}

func (mdb *MongodbRepo) GetWorkerByUserID(ctx context.Context, userID primitive.ObjectID) (*WorkerProfile, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return nil, err
	}

	var profile WorkerProfile
	err = col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find worker profile: %w", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) GetWorkerByID(ctx context.Context, id primitive.ObjectID) (*WorkerProfile, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return nil, err
	}

	var profile WorkerProfile
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find worker profile: %w", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) UpdateWorkerProfile(ctx context.Context, userID primitive.ObjectID, fields bson.M) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return false, err
	}

	fields["updated_at"] = time.Now()

	res, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("failed to update worker profile: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (mdb *MongodbRepo) DeleteWorkerProfile(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return false, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete worker profile: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (mdb *MongodbRepo) QueryWorkers(ctx context.Context, query WorkerQuery) ([]WorkerProfile, int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(query.Skip).
		SetLimit(query.Limit)
	if len(query.Sort) > 0 {
		findOptions.SetSort(query.Sort)
	}

	cursor, err := col.Find(ctx, query.Filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := []WorkerProfile{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode workers: %w", err)
	}

	countFilter := query.CountFilter
	if countFilter == nil {
		countFilter = query.Filter
	}
	total, err := col.CountDocuments(ctx, countFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	return workers, total, nil
}

func (mdb *MongodbRepo) UpdateWorkerLocation(ctx context.Context, userID primitive.ObjectID, location GeoLocation) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return false, err
	}

	res, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
		"$set": bson.M{
			"location":   location,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to update worker location: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (mdb *MongodbRepo) SetWorkerSubscription(ctx context.Context, userID primitive.ObjectID, plan SubscriptionPlan, expiresAt time.Time) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return false, err
	}

	res, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
		"$set": bson.M{
			"subscription_plan":       plan,
			"subscription_rank":       plan.Rank(),
			"subscription_expires_at": expiresAt,
			"updated_at":              time.Now(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to update worker subscription: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (mdb *MongodbRepo) SetRatingAggregate(ctx context.Context, workerID primitive.ObjectID, rating float64, totalReviews int) error {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": workerID}, bson.M{
		"$set": bson.M{
			"rating":        rating,
			"total_reviews": totalReviews,
			"updated_at":    time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update rating aggregate: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetWorkerStats(ctx context.Context) (*WorkerStats, error) {
	col, err := mdb.GetCollection(ctx, DBName, WorkersColName)
	if err != nil {
		return nil, err
	}

	stats := &WorkerStats{}
	counts := []struct {
		filter bson.M
		dest   *int64
	}{
		{bson.M{}, &stats.TotalWorkers},
		{bson.M{"is_verified": true}, &stats.VerifiedWorkers},
		{bson.M{"is_available": true}, &stats.AvailableWorkers},
		{bson.M{"subscription_plan": PlanSilver}, &stats.SilverSubscribers},
		{bson.M{"subscription_plan": PlanGold}, &stats.GoldSubscribers},
	}
	for _, c := range counts {
		n, err := col.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count workers: %w", err)
		}
		*c.dest = n
	}

	return stats, nil
}
