package services

import (
	"context"
	"errors"
	"fmt"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"
	"elearning-app/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	repo    repository.UserRepository
	jwtUtil *utils.JWTUtil
}

func NewUserService(repo repository.UserRepository, jwtUtil *utils.JWTUtil) *UserService {
	return &UserService{repo: repo, jwtUtil: jwtUtil}
}

// Register creates a student account and returns a signed token.
func (s *UserService) Register(ctx context.Context, user *models.User, password string) (string, error) {
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return "", fmt.Errorf("%w: email already registered", models.ErrDuplicate)
	} else if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}
	user.Password = hash
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}
	return s.jwtUtil.GenerateToken(user.ID.Hex(), string(user.Role))
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", models.ErrValidation)
	}
	if user.Banned {
		return "", nil, fmt.Errorf("%w: account is banned", models.ErrForbidden)
	}
	if !utils.CheckPassword(user.Password, password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", models.ErrValidation)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) ListByRole(ctx context.Context, role models.Role, page, limit int) ([]models.User, int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	return s.repo.List(ctx, filter, page, limit)
}

func (s *UserService) SetBanned(ctx context.Context, id primitive.ObjectID, banned bool) error {
	return s.repo.SetBanned(ctx, id, banned)
}

func (s *UserService) ChangeRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	switch role {
	case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}
	return s.repo.SetRole(ctx, id, role)
}
