package repository

import (
	"context"
	"time"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *models.Notification) error
	ExistsByEventID(ctx context.Context, eventID string) (bool, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Notification, int64, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
}

type notificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{col: db.Collection("notifications")}
}

func (r *notificationRepository) Create(ctx context.Context, notif *models.Notification) error {
	notif.ID = primitive.NewObjectID()
	notif.IsRead = false
	notif.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, notif)
	return err
}

func (r *notificationRepository) ExistsByEventID(ctx context.Context, eventID string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"event_id": eventID})
	return count > 0, err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Notification, int64, error) {
	filter := bson.M{"user_id": userID}
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
	var notifs []models.Notification
	if err := cursor.All(ctx, &notifs); err != nil {
		return nil, 0, err
	}
	return notifs, total, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
