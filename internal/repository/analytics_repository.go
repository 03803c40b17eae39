package repository

import (
	"context"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PlanRevenue struct {
	PlanType models.PlanType `bson:"_id" json:"plan_type"`
	Revenue  float64         `bson:"revenue" json:"revenue"`
	Count    int64           `bson:"count" json:"count"`
}

type InstructorRevenue struct {
	InstructorID primitive.ObjectID `bson:"_id" json:"instructor_id"`
	Revenue      float64            `bson:"revenue" json:"revenue"`
	Orders       int64              `bson:"orders" json:"orders"`
}

// AnalyticsRepository runs the dashboard aggregations over the orders
// collection. Only approved orders count towards revenue.
type AnalyticsRepository interface {
	RevenueByPlan(ctx context.Context) ([]PlanRevenue, error)
	InstructorRevenue(ctx context.Context) ([]InstructorRevenue, error)
	CountOrders(ctx context.Context, status models.PaymentStatus) (int64, error)
}

type analyticsRepository struct {
	orders *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) AnalyticsRepository {
	return &analyticsRepository{orders: db.Collection("orders")}
}

func (r *analyticsRepository) RevenueByPlan(ctx context.Context) ([]PlanRevenue, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"payment_status": models.PaymentApproved}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$plan_type",
			"revenue": bson.M{"$sum": "$price"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var out []PlanRevenue
	err = cursor.All(ctx, &out)
	return out, err
}

// InstructorRevenue groups approved single-course order revenue by the
// instructor owning the course. Plan-wide purchases (quarterly/school) have
// no single attributable instructor and are excluded here.
func (r *analyticsRepository) InstructorRevenue(ctx context.Context) ([]InstructorRevenue, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"payment_status": models.PaymentApproved,
			"plan_type":      models.PlanSingle,
			"course_id":      bson.M{"$ne": nil},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "course_id",
			"foreignField": "_id",
			"as":           "course",
		}}},
		bson.D{{Key: "$unwind", Value: "$course"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$course.instructor_id",
			"revenue": bson.M{"$sum": "$price"},
			"orders":  bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var out []InstructorRevenue
	err = cursor.All(ctx, &out)
	return out, err
}

func (r *analyticsRepository) CountOrders(ctx context.Context, status models.PaymentStatus) (int64, error) {
	if status == "" {
		return r.orders.CountDocuments(ctx, bson.M{})
	}
	return r.orders.CountDocuments(ctx, bson.M{"payment_status": status})
}
