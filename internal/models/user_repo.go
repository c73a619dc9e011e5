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

const UsersColName = "users"

// UserRepo owns the users collection. Lookups return (nil, nil) when no
// record matches; callers decide whether that is an error.
type UserRepo interface {
	FindByMobile(ctx context.Context, mobile string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	TouchLastLogin(ctx context.Context, id primitive.ObjectID) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*User, error)
	SetKycStatus(ctx context.Context, id primitive.ObjectID, status KycStatus) error
	SetFcmToken(ctx context.Context, id primitive.ObjectID, token *FcmToken) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	SetSubscriptionMirror(ctx context.Context, id primitive.ObjectID, subID primitive.ObjectID, plan string, expiresAt time.Time) error
}

func (mdb *MongodbRepo) FindByMobile(ctx context.Context, mobile string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return nil, err
	}

	var user User
	err = col.FindOne(ctx, bson.M{"mobile": mobile}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by mobile: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return nil, err
	}

	var user User
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) Create(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return nil, err
	}

	res, err := col.InsertOne(ctx, user)
	if err != nil {
		// The unique index on mobile turns a concurrent double-create into a
		// duplicate key error; the caller retries the lookup.
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user already exists: %w", err)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (mdb *MongodbRepo) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"last_login_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*User, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return nil, err
	}

	fields["updated_at"] = time.Now()

	res := col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		mongoFindOneAndUpdateAfter(),
	)

	var user User
	err = res.Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) SetKycStatus(ctx context.Context, id primitive.ObjectID, status KycStatus) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"kyc_status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update kyc status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (mdb *MongodbRepo) SetFcmToken(ctx context.Context, id primitive.ObjectID, token *FcmToken) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"fcm_token": token, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}
	return nil
}

// Deactivate flips the active flag; user records are never hard deleted.
func (mdb *MongodbRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_active": false, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

func (mdb *MongodbRepo) SetSubscriptionMirror(ctx context.Context, id primitive.ObjectID, subID primitive.ObjectID, plan string, expiresAt time.Time) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersColName)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"subscription_id":         subID,
			"subscription_plan":       plan,
			"subscription_expires_at": expiresAt,
			"updated_at":              time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update subscription mirror: %w", err)
	}
	return nil
}
