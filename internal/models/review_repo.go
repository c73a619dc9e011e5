package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewsColName = "reviews"

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewsByWorker(ctx context.Context, workerID primitive.ObjectID) ([]Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (bool, error)
	RatingAggregate(ctx context.Context, workerID primitive.ObjectID) (float64, int, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}
	review.BeforeCreate()

	col, err := mdb.GetCollection(ctx, DBName, ReviewsColName)
	if err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return review, nil
}

func (mdb *MongodbRepo) GetReviewsByWorker(ctx context.Context, workerID primitive.ObjectID) ([]Review, error) {
	col, err := mdb.GetCollection(ctx, DBName, ReviewsColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{"worker_id": workerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, DBName, ReviewsColName)
	if err != nil {
		return nil, err
	}

	var review Review
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, ReviewsColName)
	if err != nil {
		return false, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// RatingAggregate recomputes the running average and count for a worker from
// the reviews collection.
func (mdb *MongodbRepo) RatingAggregate(ctx context.Context, workerID primitive.ObjectID) (float64, int, error) {
	col, err := mdb.GetCollection(ctx, DBName, ReviewsColName)
	if err != nil {
		return 0, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"worker_id": workerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
			"count":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Rating float64 `bson:"rating"`
		Count  int     `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode rating aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Rating, results[0].Count, nil
}
