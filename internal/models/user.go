package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KycStatus string

const (
	KycPending   KycStatus = "pending"
	KycSubmitted KycStatus = "submitted"
	KycApproved  KycStatus = "approved"
	KycRejected  KycStatus = "rejected"
)

type FcmToken struct {
	Android string `bson:"android,omitempty" json:"android,omitempty"`
	IOS     string `bson:"ios,omitempty" json:"ios,omitempty"`
}

// User is the identity anchor. Mobile is the natural key: one record per
// number, created on the first successful OTP verification, never hard
// deleted. The subscription fields are a denormalized mirror of the owning
// Subscription record, refreshed whenever that record changes status.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Mobile       string             `bson:"mobile" json:"mobile"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	ProfilePhoto string             `bson:"profile_photo,omitempty" json:"profile_photo,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	Pincode      string             `bson:"pincode,omitempty" json:"pincode,omitempty"`

	KycStatus   KycStatus `bson:"kyc_status" json:"kyc_status"`
	KycDocument string    `bson:"kyc_document,omitempty" json:"kyc_document,omitempty"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	FcmToken    *FcmToken `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`

	SubscriptionID        *primitive.ObjectID `bson:"subscription_id,omitempty" json:"subscription_id,omitempty"`
	SubscriptionPlan      string              `bson:"subscription_plan,omitempty" json:"subscription_plan,omitempty"`
	SubscriptionExpiresAt *time.Time          `bson:"subscription_expires_at,omitempty" json:"subscription_expires_at,omitempty"`

	LastLoginAt time.Time `bson:"last_login_at" json:"last_login_at"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// UserResponse is the public view of a User returned by auth and profile
// endpoints.
type UserResponse struct {
	ID           string `json:"id"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
	City         string `json:"city,omitempty"`
	Pincode      string `json:"pincode,omitempty"`
	KycStatus    string `json:"kyc_status"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID.Hex(),
		Mobile:       u.Mobile,
		Email:        u.Email,
		Name:         u.Name,
		ProfilePhoto: u.ProfilePhoto,
		City:         u.City,
		Pincode:      u.Pincode,
		KycStatus:    string(u.KycStatus),
	}
}

type UpdateProfileDto struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	City         *string `json:"city,omitempty"`
	Pincode      *string `json:"pincode,omitempty"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
}
