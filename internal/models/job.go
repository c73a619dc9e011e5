package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobStatus string

const (
	// JobPending awaits review; only approved posts are publicly listed.
	JobPending  JobStatus = "pending"
	JobApproved JobStatus = "approved"
	JobInactive JobStatus = "inactive"
)

func ValidJobStatus(s string) bool {
	switch JobStatus(s) {
	case JobPending, JobApproved, JobInactive:
		return true
	}
	return false
}

// JobPost is a seeker-facing job listing. Applications hold the user ids of
// applicants; the $addToSet write keeps the list duplicate-free.
type JobPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostedBy primitive.ObjectID `bson:"posted_by" json:"posted_by"`

	Title        string   `bson:"title" json:"title"`
	CompanyName  string   `bson:"company_name" json:"company_name"`
	CompanyBrief string   `bson:"company_brief,omitempty" json:"company_brief,omitempty"`
	JobRole      string   `bson:"job_role" json:"job_role"`
	Eligibility  []string `bson:"eligibility,omitempty" json:"eligibility,omitempty"`
	Requirements []string `bson:"requirements,omitempty" json:"requirements,omitempty"`

	SalaryMin *float64 `bson:"salary_min,omitempty" json:"salary_min,omitempty"`
	SalaryMax *float64 `bson:"salary_max,omitempty" json:"salary_max,omitempty"`
	Location  string   `bson:"location,omitempty" json:"location,omitempty"`

	HrName    string `bson:"hr_name,omitempty" json:"hr_name,omitempty"`
	HrEmail   string `bson:"hr_email,omitempty" json:"hr_email,omitempty"`
	HrContact string `bson:"hr_contact,omitempty" json:"hr_contact,omitempty"`

	CompanyDocumentURL string `bson:"company_document_url,omitempty" json:"company_document_url,omitempty"`

	Status       JobStatus            `bson:"status" json:"status"`
	Applications []primitive.ObjectID `bson:"applications" json:"applications"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateJobPostDto struct {
	Title        string   `json:"title" binding:"required"`
	CompanyName  string   `json:"company_name" binding:"required"`
	CompanyBrief string   `json:"company_brief"`
	JobRole      string   `json:"job_role" binding:"required"`
	Eligibility  []string `json:"eligibility"`
	Requirements []string `json:"requirements"`

	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
	Location  string   `json:"location"`

	HrName    string `json:"hr_name"`
	HrEmail   string `json:"hr_email"`
	HrContact string `json:"hr_contact"`

	CompanyDocumentURL string `json:"company_document_url"`
}
