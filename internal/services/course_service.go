package services

import (
	"context"
	"fmt"
	"log"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"
	"elearning-app/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseService interface {
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id primitive.ObjectID, updated *models.Course) (*models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Publish(ctx context.Context, id primitive.ObjectID) error
	Unpublish(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	// GetForStudent strips lesson payloads unless the student holds a
	// currently valid order covering the course.
	GetForStudent(ctx context.Context, courseID, userID primitive.ObjectID) (*models.Course, bool, error)
	ListPublished(ctx context.Context, page, limit int) ([]models.CourseSummary, int64, error)
	ListAll(ctx context.Context, filter bson.M, page, limit int) ([]models.CourseSummary, int64, error)
}

type courseService struct {
	repo   repository.CourseRepository
	orders OrderService
	rdb    *redis.Client
}

func NewCourseService(repo repository.CourseRepository, orders OrderService, rdb *redis.Client) CourseService {
	return &courseService{repo: repo, orders: orders, rdb: rdb}
}

func (s *courseService) Create(ctx context.Context, course *models.Course) error {
	if course.Title == "" || course.InstructorID.IsZero() {
		return fmt.Errorf("%w: title and instructor_id are required", models.ErrValidation)
	}
	if course.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	}
	course.Status = models.CourseDraft
	if err := s.repo.Create(ctx, course); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *courseService) Update(ctx context.Context, id primitive.ObjectID, updated *models.Course) (*models.Course, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	}

	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.Price = updated.Price
	existing.Thumbnail = updated.Thumbnail
	existing.Modules = updated.Modules

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return existing, nil
}

func (s *courseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *courseService) Publish(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.SetStatus(ctx, id, models.CoursePublished); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *courseService) Unpublish(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.SetStatus(ctx, id, models.CourseDraft); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *courseService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *courseService) GetForStudent(ctx context.Context, courseID, userID primitive.ObjectID) (*models.Course, bool, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	if course.Status != models.CoursePublished {
		return nil, false, models.ErrNotFound
	}

	hasAccess, err := s.orders.HasCourseAccess(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if !hasAccess {
		locked := *course
		locked.Modules = nil
		return &locked, false, nil
	}
	return course, true, nil
}

func (s *courseService) ListPublished(ctx context.Context, page, limit int) ([]models.CourseSummary, int64, error) {
	cacheKey := fmt.Sprintf("courses:published:%d:%d", page, limit)

	var cached struct {
		Courses []models.CourseSummary `json:"courses"`
		Total   int64                  `json:"total"`
	}
	if s.rdb != nil {
		if err := utils.GetCached(ctx, s.rdb, cacheKey, &cached); err == nil {
			return cached.Courses, cached.Total, nil
		}
	}

	courses, total, err := s.repo.List(ctx, bson.M{"status": models.CoursePublished}, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if s.rdb != nil {
		cached.Courses = courses
		cached.Total = total
		_ = utils.SetCached(ctx, s.rdb, cacheKey, cached, utils.CacheDuration)
	}
	return courses, total, nil
}

func (s *courseService) ListAll(ctx context.Context, filter bson.M, page, limit int) ([]models.CourseSummary, int64, error) {
	return s.repo.List(ctx, filter, page, limit)
}

func (s *courseService) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	// published-list keys are paginated, clear them by pattern
	iter := s.rdb.Scan(ctx, 0, "courses:published:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("Failed to scan catalog cache keys: %v", err)
		return
	}
	if len(keys) > 0 {
		if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Printf("Failed to invalidate catalog cache: %v", err)
		}
	}
}
