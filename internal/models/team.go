package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamMember struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	PhotoURL     string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	LinkedinURL  string             `bson:"linkedin_url,omitempty" json:"linkedin_url,omitempty"`
	TwitterURL   string             `bson:"twitter_url,omitempty" json:"twitter_url,omitempty"`
	DisplayOrder int                `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
