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

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	List(ctx context.Context, filter bson.M, page, limit int) ([]models.CourseSummary, int64, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.CourseStatus) error
	CountByStatus(ctx context.Context, status models.CourseStatus) (int64, error)
}

type courseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) CourseRepository {
	return &courseRepository{col: db.Collection("courses")}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	course.ID = primitive.NewObjectID()
	course.CreatedAt = now
	course.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, course)
	return err
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateByID(ctx, course.ID, bson.M{"$set": course})
	return err
}

func (r *courseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, filter bson.M, page, limit int) ([]models.CourseSummary, int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"modules": 0})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var courses []models.CourseSummary
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CourseStatus) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *courseRepository) CountByStatus(ctx context.Context, status models.CourseStatus) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": status})
}
