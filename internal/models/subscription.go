package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionType string

const (
	SubscriptionWorker    SubscriptionType = "worker"
	SubscriptionJobSeeker SubscriptionType = "job_seeker"
)

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription is the source of truth for a purchased plan. The flat
// subscription fields on User and WorkerProfile are read caches refreshed
// whenever this record changes status.
type Subscription struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	SubscriptionType SubscriptionType   `bson:"subscription_type" json:"subscription_type"`
	PlanName         string             `bson:"plan_name" json:"plan_name"`
	Price            float64            `bson:"price" json:"price"`
	Status           SubscriptionStatus `bson:"status" json:"status"`

	StartsAt  time.Time `bson:"starts_at" json:"starts_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	AutoRenew bool      `bson:"auto_renew" json:"auto_renew"`
	PaymentID string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PlanPrice returns the price in INR for a worker plan.
func PlanPrice(plan SubscriptionPlan) (float64, bool) {
	switch plan {
	case PlanSilver:
		return 499.0, true
	case PlanGold:
		return 799.0, true
	default:
		return 0, false
	}
}
