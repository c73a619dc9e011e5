package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkerID primitive.ObjectID `bson:"worker_id" json:"worker_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`

	Rating  int    `bson:"rating" json:"rating"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (r *Review) BeforeCreate() {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

func (r *Review) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.WorkerID.IsZero() {
		return fmt.Errorf("invalid worker ID")
	}
	if r.UserID.IsZero() {
		return fmt.Errorf("invalid user ID")
	}
	return nil
}

func (r *Review) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

type CreateReviewDto struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
