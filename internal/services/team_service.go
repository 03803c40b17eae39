package services

import (
	"context"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamService struct {
	repo repository.TeamRepository
}

func NewTeamService(repo repository.TeamRepository) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) Create(ctx context.Context, member *models.TeamMember) error {
	if err := validateStruct(member); err != nil {
		return err
	}
	return s.repo.Create(ctx, member)
}

func (s *TeamService) Update(ctx context.Context, id primitive.ObjectID, updated *models.TeamMember) (*models.TeamMember, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(updated); err != nil {
		return nil, err
	}

	existing.Name = updated.Name
	existing.Title = updated.Title
	existing.PhotoURL = updated.PhotoURL
	existing.LinkedinURL = updated.LinkedinURL
	existing.TwitterURL = updated.TwitterURL
	existing.DisplayOrder = updated.DisplayOrder

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TeamService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

func (s *TeamService) List(ctx context.Context) ([]models.TeamMember, error) {
	return s.repo.List(ctx)
}
