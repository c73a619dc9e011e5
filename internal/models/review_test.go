package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateReviewBounds(t *testing.T) {
	base := Review{
		WorkerID: primitive.NewObjectID(),
		UserID:   primitive.NewObjectID(),
	}

	for _, rating := range []int{1, 3, 5} {
		r := base
		r.Rating = rating
		if err := r.ValidateReview(); err != nil {
			t.Errorf("rating %d: unexpected error %v", rating, err)
		}
	}
	for _, rating := range []int{0, -1, 6} {
		r := base
		r.Rating = rating
		if err := r.ValidateReview(); err == nil {
			t.Errorf("rating %d: expected error", rating)
		}
	}
}

func TestValidateReviewRequiresIDs(t *testing.T) {
	r := Review{Rating: 4, UserID: primitive.NewObjectID()}
	if err := r.ValidateReview(); err == nil {
		t.Error("zero worker id should fail validation")
	}

	r = Review{Rating: 4, WorkerID: primitive.NewObjectID()}
	if err := r.ValidateReview(); err == nil {
		t.Error("zero user id should fail validation")
	}
}

func TestReviewSanitize(t *testing.T) {
	r := Review{Comment: "  great work  "}
	r.Sanitize()
	if r.Comment != "great work" {
		t.Errorf("Sanitize() left %q", r.Comment)
	}
}

func TestReviewBeforeCreateAssignsID(t *testing.T) {
	r := Review{}
	r.BeforeCreate()
	if r.ID.IsZero() {
		t.Error("BeforeCreate should assign an id")
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("BeforeCreate should stamp timestamps")
	}
}
