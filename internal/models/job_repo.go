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

const JobsColName = "jobs"

var ErrAlreadyApplied = errors.New("already applied to job")

// JobQuery is one planned listing query over the jobs collection.
type JobQuery struct {
	Filter bson.M
	Skip   int64
	Limit  int64
}

type JobRepo interface {
	CreateJob(ctx context.Context, job *JobPost) (*JobPost, error)
	GetJobByID(ctx context.Context, id primitive.ObjectID) (*JobPost, error)
	QueryJobs(ctx context.Context, query JobQuery) ([]JobPost, int64, error)
	AddApplication(ctx context.Context, jobID, userID primitive.ObjectID) (bool, error)
	SetJobStatus(ctx context.Context, jobID, posterID primitive.ObjectID, status JobStatus) (bool, error)
	DeleteJob(ctx context.Context, jobID, posterID primitive.ObjectID) (bool, error)
}

func (mdb *MongodbRepo) CreateJob(ctx context.Context, job *JobPost) (*JobPost, error) {
	col, err := mdb.GetCollection(ctx, DBName, JobsColName)
	if err != nil {
		return nil, err
	}

	res, err := col.InsertOne(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job post: %w", err)
	}
	job.ID = res.InsertedID.(primitive.ObjectID)
	return job, nil
}

func (mdb *MongodbRepo) GetJobByID(ctx context.Context, id primitive.ObjectID) (*JobPost, error) {
	col, err := mdb.GetCollection(ctx, DBName, JobsColName)
	if err != nil {
		return nil, err
	}

	var job JobPost
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job post: %w", err)
	}
	return &job, nil
}

func (mdb *MongodbRepo) QueryJobs(ctx context.Context, query JobQuery) ([]JobPost, int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, JobsColName)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(query.Skip).
		SetLimit(query.Limit)

	cursor, err := col.Find(ctx, query.Filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []JobPost{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode jobs: %w", err)
	}

	total, err := col.CountDocuments(ctx, query.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return jobs, total, nil
}

// AddApplication records one application per user per job. $addToSet keeps
// the list duplicate-free; the modified count tells an already-applied caller
// apart from a fresh application.
func (mdb *MongodbRepo) AddApplication(ctx context.Context, jobID, userID primitive.ObjectID) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, JobsColName)
	if err != nil {
		return false, err
	}

	// No updated_at stamp here: the modified count must reflect only the
	// $addToSet so a repeat application is detectable.
	res, err := col.UpdateOne(ctx, bson.M{"_id": jobID}, bson.M{
		"$addToSet": bson.M{"applications": userID},
	})
	if err != nil {
		return false, fmt.Errorf("failed to add application: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}
	if res.ModifiedCount == 0 {
		return false, ErrAlreadyApplied
	}
	return true, nil
}

func (mdb *MongodbRepo) SetJobStatus(ctx context.Context, jobID, posterID primitive.ObjectID, status JobStatus) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, JobsColName)
	if err != nil {
		return false, err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": jobID, "posted_by": posterID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return false, fmt.Errorf("failed to update job status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (mdb *MongodbRepo) DeleteJob(ctx context.Context, jobID, posterID primitive.ObjectID) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, JobsColName)
	if err != nil {
		return false, err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": jobID, "posted_by": posterID})
	if err != nil {
		return false, fmt.Errorf("failed to delete job post: %w", err)
	}
	return res.DeletedCount > 0, nil
}
