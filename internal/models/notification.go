package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	TypeOrderApproved NotificationType = "order_approved"
	TypeOrderRejected NotificationType = "order_rejected"
	TypeSystemMessage NotificationType = "system_message"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	// EventID deduplicates delivery: one notification per approval event.
	EventID   string            `bson:"event_id" json:"-"`
	IsRead    bool              `bson:"is_read" json:"is_read"`
	Metadata  map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}

// OrderEvent is what order mutations publish on the order_events channel.
type OrderEvent struct {
	EventID   string `json:"event_id"`
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	EventType string `json:"event_type"` // approved, rejected
	PlanType  string `json:"plan_type"`
}
