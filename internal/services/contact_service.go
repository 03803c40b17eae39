package services

import (
	"context"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Submit(ctx context.Context, msg *models.ContactMessage) error {
	if err := validateStruct(msg); err != nil {
		return err
	}
	return s.repo.Create(ctx, msg)
}

func (s *ContactService) List(ctx context.Context, page, limit int) ([]models.ContactMessage, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *ContactService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.MarkRead(ctx, id)
}
