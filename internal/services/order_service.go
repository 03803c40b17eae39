package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"elearning-app/internal/config"
	"elearning-app/internal/models"
	"elearning-app/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// quarterly plans always run 90 days, regardless of configuration
const quarterlyAccessDays = 90

type OrderService interface {
	Create(ctx context.Context, order *models.Order) error
	Approve(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Reject(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ExtendByMonths(ctx context.Context, id primitive.ObjectID, months int) (*models.Order, error)
	ExtendByDays(ctx context.Context, id primitive.ObjectID, days int) (*models.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	List(ctx context.Context, filter bson.M, page, limit int) ([]models.Order, int64, error)
	HasCourseAccess(ctx context.Context, userID, courseID primitive.ObjectID) (bool, error)
}

// OrderEventPublisher receives the approval/rejection events the order
// lifecycle emits. Delivery happens outside the mutation path.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

type orderService struct {
	repo      repository.OrderRepository
	publisher OrderEventPublisher
	rdb       *redis.Client
	cfg       *config.Config
	now       func() time.Time
}

func NewOrderService(repo repository.OrderRepository, publisher OrderEventPublisher, rdb *redis.Client, cfg *config.Config) OrderService {
	return &orderService{
		repo:      repo,
		publisher: publisher,
		rdb:       rdb,
		cfg:       cfg,
		now:       time.Now,
	}
}

// AccessValid reports whether an order currently grants content access. It
// is time-dependent and must be recomputed on every check.
func AccessValid(order *models.Order, now time.Time) bool {
	return order.IsActive && order.EndDate != nil && now.Before(*order.EndDate)
}

func (s *orderService) Create(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.PaymentStatus = models.PaymentPending
	order.StartDate = nil
	order.EndDate = nil
	order.IsActive = false

	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *orderService) Approve(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	start := now
	end := now.AddDate(0, 0, s.accessDays(order.PlanType))

	// The repository only applies start/end when the window is still
	// unopened, so a re-approval (or the loser of a concurrent first
	// approval) never resets existing dates.
	updated, transitioned, err := s.repo.Approve(ctx, id, start, end)
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.publishEvent(updated, "approved")
	}
	s.invalidateCaches(ctx)
	return updated, nil
}

func (s *orderService) Reject(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	updated, transitioned, err := s.repo.Reject(ctx, id)
	if err != nil {
		return nil, err
	}

	if transitioned {
		s.publishEvent(updated, "rejected")
	}
	s.invalidateCaches(ctx)
	return updated, nil
}

func (s *orderService) ExtendByMonths(ctx context.Context, id primitive.ObjectID, months int) (*models.Order, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: months must be positive", models.ErrInvalidState)
	}
	return s.extend(ctx, id, func(end time.Time) time.Time {
		return AddMonthsClamped(end, months)
	})
}

func (s *orderService) ExtendByDays(ctx context.Context, id primitive.ObjectID, days int) (*models.Order, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", models.ErrInvalidState)
	}
	return s.extend(ctx, id, func(end time.Time) time.Time {
		return end.AddDate(0, 0, days)
	})
}

// extend advances end_date with a compare-and-swap: the write only lands if
// the date is still the one we computed from, otherwise re-read and retry.
func (s *orderService) extend(ctx context.Context, id primitive.ObjectID, advance func(time.Time) time.Time) (*models.Order, error) {
	for attempt := 0; attempt < 3; attempt++ {
		order, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.EndDate == nil {
			return nil, fmt.Errorf("%w: order has no access window to extend", models.ErrInvalidState)
		}

		newEnd := advance(*order.EndDate)
		ok, err := s.repo.SetEndDate(ctx, id, *order.EndDate, newEnd)
		if err != nil {
			return nil, err
		}
		if ok {
			order.EndDate = &newEnd
			s.invalidateCaches(ctx)
			return order, nil
		}
	}
	return nil, fmt.Errorf("order %s is being modified concurrently", id.Hex())
}

func (s *orderService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *orderService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *orderService) List(ctx context.Context, filter bson.M, page, limit int) ([]models.Order, int64, error) {
	return s.repo.List(ctx, filter, page, limit)
}

// HasCourseAccess gates lesson visibility: a single-course order covers its
// course, quarterly and school plans cover all courses, kit orders grant no
// content access at all.
func (s *orderService) HasCourseAccess(ctx context.Context, userID, courseID primitive.ObjectID) (bool, error) {
	orders, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.now().UTC()
	for i := range orders {
		order := &orders[i]
		if order.PaymentStatus != models.PaymentApproved || !AccessValid(order, now) {
			continue
		}
		switch order.PlanType {
		case models.PlanQuarterly, models.PlanSchool:
			return true, nil
		case models.PlanSingle:
			if order.CourseID != nil && *order.CourseID == courseID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *orderService) accessDays(plan models.PlanType) int {
	switch plan {
	case models.PlanQuarterly:
		return quarterlyAccessDays
	case models.PlanSingle:
		return s.cfg.SingleAccessDays
	case models.PlanKit:
		return s.cfg.KitAccessDays
	case models.PlanSchool:
		return s.cfg.SchoolAccessDays
	default:
		return s.cfg.SingleAccessDays
	}
}

// publishEvent hands the event off without blocking the mutation response;
// delivery failure is logged, never rolled back into the order.
func (s *orderService) publishEvent(order *models.Order, eventType string) {
	if s.publisher == nil {
		return
	}
	event := models.OrderEvent{
		EventID:   uuid.NewString(),
		OrderID:   order.ID.Hex(),
		UserID:    order.UserID.Hex(),
		EventType: eventType,
		PlanType:  string(order.PlanType),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			log.Printf("Failed to publish order event %s: %v", event.EventID, err)
		}
	}()
}

func (s *orderService) invalidateCaches(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "analytics:summary", "orders:all").Err(); err != nil {
		log.Printf("Failed to invalidate cache: %v", err)
	}
}

// AddMonthsClamped advances t by whole calendar months, keeping the
// day-of-month and clamping to the last valid day when the target month is
// shorter (Jan 31 + 1 month = Feb 28/29, not Mar 2).
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := year*12 + int(month) - 1 + months
	targetYear := total / 12
	targetMonth := time.Month(total%12 + 1)

	lastDay := daysInMonth(targetYear, targetMonth)
	if day > lastDay {
		day = lastDay
	}
	return time.Date(targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
