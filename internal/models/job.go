package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
)

type Job struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Company     string             `bson:"company" json:"company" validate:"required"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	Salary      string             `bson:"salary,omitempty" json:"salary,omitempty"`
	Deadline    time.Time          `bson:"deadline" json:"deadline"`
	Status      JobStatus          `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type JobApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID     primitive.ObjectID `bson:"job_id" json:"job_id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Phone     string             `bson:"phone" json:"phone"`
	ResumeURL string             `bson:"resume_url" json:"resume_url"`
	CoverNote string             `bson:"cover_note,omitempty" json:"cover_note,omitempty"`
	Status    ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
