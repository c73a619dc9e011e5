package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionPlan string

const (
	PlanNone   SubscriptionPlan = "none"
	PlanSilver SubscriptionPlan = "silver"
	PlanGold   SubscriptionPlan = "gold"
)

// Rank gives the plan its sort weight: gold > silver > none. The rank is
// persisted next to the plan name so the search sort never depends on the
// lexicographic order of the plan strings.
func (p SubscriptionPlan) Rank() int {
	switch p {
	case PlanGold:
		return 2
	case PlanSilver:
		return 1
	default:
		return 0
	}
}

func ParsePlan(s string) (SubscriptionPlan, error) {
	switch SubscriptionPlan(s) {
	case PlanSilver:
		return PlanSilver, nil
	case PlanGold:
		return PlanGold, nil
	default:
		return "", fmt.Errorf("invalid plan: %q", s)
	}
}

// GeoLocation is a GeoJSON point, coordinates ordered [longitude, latitude].
type GeoLocation struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(longitude, latitude float64) GeoLocation {
	return GeoLocation{
		Type:        "Point",
		Coordinates: [2]float64{longitude, latitude},
	}
}

func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// WorkerProfile is a worker's marketplace listing, at most one per user.
type WorkerProfile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Categories      []string `bson:"categories" json:"categories"`
	Subcategories   []string `bson:"subcategories" json:"subcategories"`
	ExperienceYears int      `bson:"experience_years" json:"experience_years"`
	Description     string   `bson:"description,omitempty" json:"description,omitempty"`
	HourlyRate      float64  `bson:"hourly_rate" json:"hourly_rate"`
	LicenseNumber   string   `bson:"license_number,omitempty" json:"license_number,omitempty"`
	ServiceAreas    []string `bson:"service_areas" json:"service_areas"`

	SubscriptionPlan      SubscriptionPlan `bson:"subscription_plan" json:"subscription_plan"`
	SubscriptionRank      int              `bson:"subscription_rank" json:"-"`
	SubscriptionExpiresAt *time.Time       `bson:"subscription_expires_at,omitempty" json:"subscription_expires_at,omitempty"`

	IsVerified  bool `bson:"is_verified" json:"is_verified"`
	IsAvailable bool `bson:"is_available" json:"is_available"`

	Rating             float64 `bson:"rating" json:"rating"`
	TotalReviews       int     `bson:"total_reviews" json:"total_reviews"`
	TotalJobsCompleted int     `bson:"total_jobs_completed" json:"total_jobs_completed"`

	Location *GeoLocation `bson:"location,omitempty" json:"location,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateWorkerProfileDto struct {
	Categories      []string `json:"categories" binding:"required,min=1"`
	Subcategories   []string `json:"subcategories"`
	ExperienceYears int      `json:"experience_years" binding:"min=0"`
	Description     string   `json:"description"`
	HourlyRate      float64  `json:"hourly_rate" binding:"min=0"`
	LicenseNumber   string   `json:"license_number"`
	ServiceAreas    []string `json:"service_areas"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

type UpdateWorkerProfileDto struct {
	Categories      *[]string `json:"categories,omitempty"`
	Subcategories   *[]string `json:"subcategories,omitempty"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	Description     *string   `json:"description,omitempty"`
	HourlyRate      *float64  `json:"hourly_rate,omitempty"`
	ServiceAreas    *[]string `json:"service_areas,omitempty"`
	IsAvailable     *bool     `json:"is_available,omitempty"`
}

type UpdateLocationDto struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// Pagination math shared by search and nearby.
const (
	DefaultPageSize = 20
	MaxSearchLimit  = 100
	MaxNearbyLimit  = 50
)

type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func ClampPage(page int64) int64 {
	if page < 1 {
		return 1
	}
	return page
}

func ClampLimit(limit, max int64) int64 {
	if limit < 1 {
		return DefaultPageSize
	}
	if limit > max {
		return max
	}
	return limit
}

func NewPagination(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// WorkerFilter accumulates optional predicates into a single query document.
// Each predicate is independent; adding them in any order yields the same
// filter.
type WorkerFilter struct {
	doc bson.M
}

func NewWorkerFilter() *WorkerFilter {
	return &WorkerFilter{doc: bson.M{}}
}

// PublicBaseline restricts results to listable profiles.
func (f *WorkerFilter) PublicBaseline() *WorkerFilter {
	f.doc["is_available"] = true
	f.doc["is_verified"] = true
	return f
}

func (f *WorkerFilter) Category(category string) *WorkerFilter {
	if category != "" {
		f.doc["categories"] = category
	}
	return f
}

func (f *WorkerFilter) Subcategory(subcategory string) *WorkerFilter {
	if subcategory != "" {
		f.doc["subcategories"] = subcategory
	}
	return f
}

func (f *WorkerFilter) ServiceArea(city string) *WorkerFilter {
	if city != "" {
		f.doc["service_areas"] = city
	}
	return f
}

func (f *WorkerFilter) MinRating(rating float64) *WorkerFilter {
	if rating > 0 {
		f.doc["rating"] = bson.M{"$gte": rating}
	}
	return f
}

func (f *WorkerFilter) NearPoint(longitude, latitude float64, maxDistanceMeters int) *WorkerFilter {
	f.doc["location"] = bson.M{
		"$nearSphere": bson.M{
			"$geometry": bson.M{
				"type":        "Point",
				"coordinates": []float64{longitude, latitude},
			},
			"$maxDistance": maxDistanceMeters,
		},
	}
	return f
}

// WithinRadius is the countable twin of NearPoint: $geoWithin/$centerSphere
// selects the same documents but is accepted by count queries, which reject
// $nearSphere.
func (f *WorkerFilter) WithinRadius(longitude, latitude float64, maxDistanceMeters int) *WorkerFilter {
	const earthRadiusMeters = 6378137.0
	f.doc["location"] = bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": []interface{}{
				[]float64{longitude, latitude},
				float64(maxDistanceMeters) / earthRadiusMeters,
			},
		},
	}
	return f
}

func (f *WorkerFilter) Build() bson.M {
	return f.doc
}

// TierSort is the three-level tie-break for public search: paid tier first,
// then rating, then review count. The nearby query deliberately does not use
// it; proximity order comes from the geospatial query itself.
func TierSort() bson.D {
	return bson.D{
		{Key: "subscription_rank", Value: -1},
		{Key: "rating", Value: -1},
		{Key: "total_reviews", Value: -1},
	}
}
