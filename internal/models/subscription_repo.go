package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const SubscriptionsColName = "subscriptions"

type SubscriptionRepo interface {
	CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error)
	GetSubscriptionByID(ctx context.Context, id primitive.ObjectID) (*Subscription, error)
	SetPaymentID(ctx context.Context, id primitive.ObjectID, paymentID string) error
	ActivateByPaymentID(ctx context.Context, paymentID string) (*Subscription, error)
	SetSubscriptionStatus(ctx context.Context, id primitive.ObjectID, status SubscriptionStatus) error
}

func (mdb *MongodbRepo) CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error) {
	col, err := mdb.GetCollection(ctx, DBName, SubscriptionsColName)
	if err != nil {
		return nil, err
	}

	res, err := col.InsertOne(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

func (mdb *MongodbRepo) GetSubscriptionByID(ctx context.Context, id primitive.ObjectID) (*Subscription, error) {
	col, err := mdb.GetCollection(ctx, DBName, SubscriptionsColName)
	if err != nil {
		return nil, err
	}

	var sub Subscription
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &sub, nil
}

func (mdb *MongodbRepo) SetPaymentID(ctx context.Context, id primitive.ObjectID, paymentID string) error {
	col, err := mdb.GetCollection(ctx, DBName, SubscriptionsColName)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"payment_id": paymentID, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to set payment id: %w", err)
	}
	return nil
}

// ActivateByPaymentID flips a pending subscription to active when the payment
// provider confirms capture, and returns the updated record so the caller can
// refresh the denormalized mirrors.
func (mdb *MongodbRepo) ActivateByPaymentID(ctx context.Context, paymentID string) (*Subscription, error) {
	col, err := mdb.GetCollection(ctx, DBName, SubscriptionsColName)
	if err != nil {
		return nil, err
	}

	res := col.FindOneAndUpdate(ctx,
		bson.M{"payment_id": paymentID, "status": SubscriptionPending},
		bson.M{"$set": bson.M{"status": SubscriptionActive, "updated_at": time.Now()}},
		mongoFindOneAndUpdateAfter(),
	)

	var sub Subscription
	err = res.Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}
	return &sub, nil
}

func (mdb *MongodbRepo) SetSubscriptionStatus(ctx context.Context, id primitive.ObjectID, status SubscriptionStatus) error {
	col, err := mdb.GetCollection(ctx, DBName, SubscriptionsColName)
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("subscription not found")
	}
	return nil
}
