package models

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPlanRankOrder(t *testing.T) {
	if PlanGold.Rank() <= PlanSilver.Rank() {
		t.Errorf("gold rank %d should exceed silver rank %d", PlanGold.Rank(), PlanSilver.Rank())
	}
	if PlanSilver.Rank() <= PlanNone.Rank() {
		t.Errorf("silver rank %d should exceed none rank %d", PlanSilver.Rank(), PlanNone.Rank())
	}
}

func TestParsePlan(t *testing.T) {
	if plan, err := ParsePlan("silver"); err != nil || plan != PlanSilver {
		t.Errorf("ParsePlan(silver) = %v, %v", plan, err)
	}
	if plan, err := ParsePlan("gold"); err != nil || plan != PlanGold {
		t.Errorf("ParsePlan(gold) = %v, %v", plan, err)
	}
	for _, invalid := range []string{"", "none", "platinum", "Gold"} {
		if _, err := ParsePlan(invalid); err == nil {
			t.Errorf("ParsePlan(%q) should fail", invalid)
		}
	}
}

func TestNewGeoPointOrdersLongitudeFirst(t *testing.T) {
	point := NewGeoPoint(77.5946, 12.9716)
	if point.Type != "Point" {
		t.Errorf("type = %q, want Point", point.Type)
	}
	if point.Coordinates[0] != 77.5946 || point.Coordinates[1] != 12.9716 {
		t.Errorf("coordinates = %v, want [longitude latitude]", point.Coordinates)
	}
}

func TestValidateCoordinates(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		valid    bool
	}{
		{"bangalore", 12.9716, 77.5946, true},
		{"equator meridian", 0, 0, true},
		{"latitude bounds", 90, 180, true},
		{"latitude too high", 90.1, 0, false},
		{"latitude too low", -90.1, 0, false},
		{"longitude too high", 0, 180.1, false},
		{"longitude too low", 0, -180.1, false},
	}
	for _, tc := range cases {
		err := ValidateCoordinates(tc.lat, tc.lng)
		if tc.valid && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0); got != 1 {
		t.Errorf("ClampPage(0) = %d, want 1", got)
	}
	if got := ClampPage(-5); got != 1 {
		t.Errorf("ClampPage(-5) = %d, want 1", got)
	}
	if got := ClampPage(7); got != 7 {
		t.Errorf("ClampPage(7) = %d, want 7", got)
	}
}

func TestClampLimit(t *testing.T) {
	if got := ClampLimit(0, MaxSearchLimit); got != DefaultPageSize {
		t.Errorf("ClampLimit(0) = %d, want %d", got, DefaultPageSize)
	}
	if got := ClampLimit(1000, MaxSearchLimit); got != MaxSearchLimit {
		t.Errorf("ClampLimit(1000, search) = %d, want %d", got, MaxSearchLimit)
	}
	if got := ClampLimit(1000, MaxNearbyLimit); got != MaxNearbyLimit {
		t.Errorf("ClampLimit(1000, nearby) = %d, want %d", got, MaxNearbyLimit)
	}
	if got := ClampLimit(30, MaxSearchLimit); got != 30 {
		t.Errorf("ClampLimit(30) = %d, want 30", got)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total, limit, pages int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{101, 20, 6},
	}
	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		if p.Pages != tc.pages {
			t.Errorf("NewPagination(total=%d, limit=%d).Pages = %d, want %d", tc.total, tc.limit, p.Pages, tc.pages)
		}
	}
}

func TestWorkerFilterComposition(t *testing.T) {
	filter := NewWorkerFilter().
		PublicBaseline().
		Category("plumbing").
		Subcategory("pipe-repair").
		ServiceArea("bangalore").
		MinRating(4).
		Build()

	want := bson.M{
		"is_available":  true,
		"is_verified":   true,
		"categories":    "plumbing",
		"subcategories": "pipe-repair",
		"service_areas": "bangalore",
		"rating":        bson.M{"$gte": 4.0},
	}
	if !reflect.DeepEqual(filter, want) {
		t.Errorf("filter = %v, want %v", filter, want)
	}
}

func TestWorkerFilterSkipsEmptyPredicates(t *testing.T) {
	filter := NewWorkerFilter().
		PublicBaseline().
		Category("").
		Subcategory("").
		ServiceArea("").
		MinRating(0).
		Build()

	want := bson.M{"is_available": true, "is_verified": true}
	if !reflect.DeepEqual(filter, want) {
		t.Errorf("filter = %v, want %v", filter, want)
	}
}

func TestWorkerFilterOrderInsensitive(t *testing.T) {
	a := NewWorkerFilter().Category("plumbing").MinRating(3).PublicBaseline().Build()
	b := NewWorkerFilter().PublicBaseline().MinRating(3).Category("plumbing").Build()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("predicate order changed the filter: %v vs %v", a, b)
	}
}

func TestNearPointAndWithinRadiusTargetLocation(t *testing.T) {
	near := NewWorkerFilter().NearPoint(77.5946, 12.9716, 10000).Build()
	loc, ok := near["location"].(bson.M)
	if !ok {
		t.Fatalf("NearPoint did not set a location document: %v", near)
	}
	if _, ok := loc["$nearSphere"]; !ok {
		t.Errorf("NearPoint filter missing $nearSphere: %v", loc)
	}

	within := NewWorkerFilter().WithinRadius(77.5946, 12.9716, 10000).Build()
	loc, ok = within["location"].(bson.M)
	if !ok {
		t.Fatalf("WithinRadius did not set a location document: %v", within)
	}
	if _, ok := loc["$geoWithin"]; !ok {
		t.Errorf("WithinRadius filter missing $geoWithin: %v", loc)
	}
}

func TestTierSortKeys(t *testing.T) {
	sort := TierSort()
	want := bson.D{
		{Key: "subscription_rank", Value: -1},
		{Key: "rating", Value: -1},
		{Key: "total_reviews", Value: -1},
	}
	if !reflect.DeepEqual(sort, want) {
		t.Errorf("TierSort() = %v, want %v", sort, want)
	}
}
