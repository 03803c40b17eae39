package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

type PlanType string

const (
	PlanSingle    PlanType = "single"
	PlanQuarterly PlanType = "quarterly"
	PlanKit       PlanType = "kit"
	PlanSchool    PlanType = "school"
)

func (p PlanType) Valid() bool {
	switch p {
	case PlanSingle, PlanQuarterly, PlanKit, PlanSchool:
		return true
	}
	return false
}

// Order is the permanent purchase record. Payment evidence fields are
// write-once and kept for audit only. StartDate/EndDate stay nil until the
// first approval opens the access window.
type Order struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	PlanType        PlanType            `bson:"plan_type" json:"plan_type"`
	CourseID        *primitive.ObjectID `bson:"course_id,omitempty" json:"course_id,omitempty"`
	Price           float64             `bson:"price" json:"price"`
	PaymentMethodID string              `bson:"payment_method_id" json:"payment_method_id"`
	TransactionID   string              `bson:"transaction_id" json:"transaction_id"`
	SenderNumber    string              `bson:"sender_number" json:"sender_number"`
	PaymentStatus   PaymentStatus       `bson:"payment_status" json:"payment_status"`
	StartDate       *time.Time          `bson:"start_date" json:"start_date"`
	EndDate         *time.Time          `bson:"end_date" json:"end_date"`
	IsActive        bool                `bson:"is_active" json:"is_active"`
	DeliveryAddress string              `bson:"delivery_address,omitempty" json:"delivery_address,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// Validate checks the creation-time invariants: a single-course order must
// reference its course (and only a single-course order may), kit orders need
// a delivery address, price can not be negative.
func (o *Order) Validate() error {
	if !o.PlanType.Valid() {
		return fmt.Errorf("%w: unknown plan type %q", ErrValidation, o.PlanType)
	}
	if o.UserID.IsZero() {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if o.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if o.PlanType == PlanSingle && (o.CourseID == nil || o.CourseID.IsZero()) {
		return fmt.Errorf("%w: course_id is required for a single-course order", ErrValidation)
	}
	if o.PlanType != PlanSingle && o.CourseID != nil {
		return fmt.Errorf("%w: course_id is only allowed for a single-course order", ErrValidation)
	}
	if o.PlanType == PlanKit && o.DeliveryAddress == "" {
		return fmt.Errorf("%w: delivery_address is required for a kit order", ErrValidation)
	}
	return nil
}
