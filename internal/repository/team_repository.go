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

type TeamRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error)
	List(ctx context.Context) ([]models.TeamMember, error)
}

type teamRepository struct {
	col *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) TeamRepository {
	return &teamRepository{col: db.Collection("team_members")}
}

func (r *teamRepository) Create(ctx context.Context, member *models.TeamMember) error {
	now := time.Now().UTC()
	member.ID = primitive.NewObjectID()
	member.CreatedAt = now
	member.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, member)
	return err
}

func (r *teamRepository) Update(ctx context.Context, member *models.TeamMember) error {
	member.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, member.ID, bson.M{"$set": member})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamRepository) List(ctx context.Context) ([]models.TeamMember, error) {
	opts := options.Find().SetSort(bson.M{"display_order": 1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var members []models.TeamMember
	err = cursor.All(ctx, &members)
	return members, err
}
