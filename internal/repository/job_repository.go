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

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	List(ctx context.Context, filter bson.M, page, limit int) ([]models.Job, int64, error)

	CreateApplication(ctx context.Context, app *models.JobApplication) error
	GetApplicationsByJob(ctx context.Context, jobID primitive.ObjectID, page, limit int) ([]models.JobApplication, int64, error)
	MarkApplicationReviewed(ctx context.Context, id primitive.ObjectID) error
}

type jobRepository struct {
	jobs         *mongo.Collection
	applications *mongo.Collection
}

func NewJobRepository(db *mongo.Database) JobRepository {
	return &jobRepository{
		jobs:         db.Collection("jobs"),
		applications: db.Collection("job_applications"),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	now := time.Now().UTC()
	job.ID = primitive.NewObjectID()
	job.CreatedAt = now
	job.UpdatedAt = now
	_, err := r.jobs.InsertOne(ctx, job)
	return err
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	_, err := r.jobs.UpdateByID(ctx, job.ID, bson.M{"$set": job})
	return err
}

func (r *jobRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.jobs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := r.jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter bson.M, page, limit int) ([]models.Job, int64, error) {
	total, err := r.jobs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	app.ID = primitive.NewObjectID()
	app.Status = models.ApplicationPending
	app.CreatedAt = time.Now().UTC()
	_, err := r.applications.InsertOne(ctx, app)
	return err
}

func (r *jobRepository) GetApplicationsByJob(ctx context.Context, jobID primitive.ObjectID, page, limit int) ([]models.JobApplication, int64, error) {
	filter := bson.M{"job_id": jobID}
	total, err := r.applications.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.applications.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var apps []models.JobApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *jobRepository) MarkApplicationReviewed(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.applications.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status": models.ApplicationReviewed,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
