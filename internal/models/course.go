package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

type Lesson struct {
	Title    string `bson:"title" json:"title"`
	VideoURL string `bson:"video_url,omitempty" json:"video_url,omitempty"`
	Content  string `bson:"content,omitempty" json:"content,omitempty"`
	Duration int    `bson:"duration_minutes,omitempty" json:"duration_minutes,omitempty"`
}

type CourseModule struct {
	Title   string   `bson:"title" json:"title"`
	Lessons []Lesson `bson:"lessons" json:"lessons"`
}

type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	InstructorID primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	Price        float64            `bson:"price" json:"price"`
	Thumbnail    string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Status       CourseStatus       `bson:"status" json:"status"`
	Modules      []CourseModule     `bson:"modules" json:"modules,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CourseSummary is the catalog view: no lesson payloads, those are gated by
// an active order.
type CourseSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	InstructorID primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	Price        float64            `bson:"price" json:"price"`
	Thumbnail    string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Status       CourseStatus       `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
