package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"
	"elearning-app/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobService interface {
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, id primitive.ObjectID, updated *models.Job) (*models.Job, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Close(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error)
	ListOpen(ctx context.Context, page, limit int) ([]models.Job, int64, error)
	ListAll(ctx context.Context, filter bson.M, page, limit int) ([]models.Job, int64, error)

	Apply(ctx context.Context, app *models.JobApplication) error
	Applications(ctx context.Context, jobID primitive.ObjectID, page, limit int) ([]models.JobApplication, int64, error)
	MarkApplicationReviewed(ctx context.Context, id primitive.ObjectID) error
}

type jobService struct {
	repo repository.JobRepository
}

func NewJobService(repo repository.JobRepository) JobService {
	return &jobService{repo: repo}
}

func (s *jobService) Create(ctx context.Context, job *models.Job) error {
	if err := validateStruct(job); err != nil {
		return err
	}
	if job.Status == "" {
		job.Status = models.JobOpen
	}
	return s.repo.Create(ctx, job)
}

func (s *jobService) Update(ctx context.Context, id primitive.ObjectID, updated *models.Job) (*models.Job, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(updated); err != nil {
		return nil, err
	}

	existing.Title = updated.Title
	existing.Company = updated.Company
	existing.Location = updated.Location
	existing.Description = updated.Description
	existing.Salary = updated.Salary
	existing.Deadline = updated.Deadline

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *jobService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *jobService) Close(ctx context.Context, id primitive.ObjectID) error {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	job.Status = models.JobClosed
	return s.repo.Update(ctx, job)
}

func (s *jobService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *jobService) ListOpen(ctx context.Context, page, limit int) ([]models.Job, int64, error) {
	return s.repo.List(ctx, bson.M{"status": models.JobOpen}, page, limit)
}

func (s *jobService) ListAll(ctx context.Context, filter bson.M, page, limit int) ([]models.Job, int64, error) {
	return s.repo.List(ctx, filter, page, limit)
}

func (s *jobService) Apply(ctx context.Context, app *models.JobApplication) error {
	if err := validateStruct(app); err != nil {
		return err
	}

	job, err := s.repo.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job.Status != models.JobOpen {
		return fmt.Errorf("%w: job is closed", models.ErrInvalidState)
	}
	if !job.Deadline.IsZero() && time.Now().UTC().After(job.Deadline) {
		return fmt.Errorf("%w: application deadline has passed", models.ErrInvalidState)
	}

	return s.repo.CreateApplication(ctx, app)
}

func (s *jobService) Applications(ctx context.Context, jobID primitive.ObjectID, page, limit int) ([]models.JobApplication, int64, error) {
	return s.repo.GetApplicationsByJob(ctx, jobID, page, limit)
}

func (s *jobService) MarkApplicationReviewed(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.MarkApplicationReviewed(ctx, id)
}

func validateStruct(v interface{}) error {
	if err := utils.GetValidator().Struct(v); err != nil {
		errs := utils.ParseErrors(err)
		return fmt.Errorf("%w: %s", models.ErrValidation, strings.Join(errs, " // "))
	}
	return nil
}
