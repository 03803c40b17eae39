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

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, page, limit int) ([]models.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
}

type contactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) ContactRepository {
	return &contactRepository{col: db.Collection("contact_messages")}
}

func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.IsRead = false
	msg.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, msg)
	return err
}

func (r *contactRepository) List(ctx context.Context, page, limit int) ([]models.ContactMessage, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	var msgs []models.ContactMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

func (r *contactRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
