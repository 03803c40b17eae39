package repository

import (
	"context"
	"errors"
	"time"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	List(ctx context.Context, filter bson.M, page, limit int) ([]models.Order, int64, error)
	Approve(ctx context.Context, id primitive.ObjectID, start, end time.Time) (*models.Order, bool, error)
	Reject(ctx context.Context, id primitive.ObjectID) (*models.Order, bool, error)
	SetEndDate(ctx context.Context, id primitive.ObjectID, expected, newEnd time.Time) (bool, error)
	ApprovedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

type orderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{col: db.Collection("orders")}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, order)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	err = cursor.All(ctx, &orders)
	return orders, err
}

func (r *orderRepository) List(ctx context.Context, filter bson.M, page, limit int) ([]models.Order, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Approve flips the order into approved and, when the access window has not
// been opened yet, opens it — all in one conditional update so a concurrent
// first approval can never produce two windows or a half-set record. The
// returned bool reports whether the status actually transitioned (the
// approval event); a repeat call on an approved order is a no-op.
func (r *orderRepository) Approve(ctx context.Context, id primitive.ObjectID, start, end time.Time) (*models.Order, bool, error) {
	filter := bson.M{"_id": id, "payment_status": bson.M{"$ne": models.PaymentApproved}}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"payment_status": models.PaymentApproved,
			"is_active":      true,
			"updated_at":     time.Now().UTC(),
			"start_date":     bson.M{"$ifNull": bson.A{"$start_date", start}},
			"end_date":       bson.M{"$ifNull": bson.A{"$end_date", end}},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == nil {
		return &order, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	// No match: either the order is already approved or it does not exist.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Reject flips the order into rejected. A previously opened access window is
// left untouched so a later re-approval does not recompute dates.
func (r *orderRepository) Reject(ctx context.Context, id primitive.ObjectID) (*models.Order, bool, error) {
	filter := bson.M{"_id": id, "payment_status": bson.M{"$ne": models.PaymentRejected}}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentRejected,
		"updated_at":     time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == nil {
		return &order, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SetEndDate is the compare-and-swap used by extensions: the write only
// lands if end_date still equals the value the caller computed from, so two
// concurrent extensions can not overwrite each other.
func (r *orderRepository) SetEndDate(ctx context.Context, id primitive.ObjectID, expected, newEnd time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "end_date": expected},
		bson.M{"$set": bson.M{"end_date": newEnd, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *orderRepository) ApprovedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	cursor, err := r.col.Find(ctx, bson.M{
		"payment_status": models.PaymentApproved,
		"start_date":     bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	err = cursor.All(ctx, &orders)
	return orders, err
}
