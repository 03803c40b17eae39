package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderEventsChannel = "order_events"

// NotificationService is both ends of the order_events pipe: mutations
// publish, the Start loop consumes. Event IDs make processing idempotent,
// one stored notification (and one email) per approval/rejection event.
type NotificationService struct {
	repo   repository.NotificationRepository
	users  repository.UserRepository
	rdb    *redis.Client
	mailer *Mailer
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, rdb *redis.Client, mailer *Mailer) *NotificationService {
	return &NotificationService{repo: repo, users: users, rdb: rdb, mailer: mailer}
}

// PublishOrderEvent implements services.OrderEventPublisher.
func (s *NotificationService) PublishOrderEvent(ctx context.Context, event models.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, OrderEventsChannel, payload).Err()
}

// Start consumes order events until ctx is cancelled.
func (s *NotificationService) Start(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, OrderEventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := s.ProcessEvent(ctx, []byte(msg.Payload)); err != nil {
				log.Printf("Failed to process order event: %v", err)
			}
		}
	}
}

func (s *NotificationService) ProcessEvent(ctx context.Context, payload []byte) error {
	var event models.OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	// redelivered event, already handled
	exists, err := s.repo.ExistsByEventID(ctx, event.EventID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	title, message, notifType := formatOrderEvent(event)
	notification := &models.Notification{
		UserID:  event.UserID,
		Title:   title,
		Message: message,
		Type:    notifType,
		EventID: event.EventID,
		Metadata: map[string]string{
			"order_id":  event.OrderID,
			"plan_type": event.PlanType,
		},
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	s.sendEmail(ctx, event.UserID, title, message)
	return nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Notification, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, limit)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// sendEmail is best-effort: a failed delivery is logged and dropped, it
// never bubbles back into the order mutation.
func (s *NotificationService) sendEmail(ctx context.Context, userIDHex, subject, body string) {
	if s.mailer == nil {
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("Notification email skipped, user %s: %v", userIDHex, err)
		return
	}
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		log.Printf("Failed to send notification email to %s: %v", user.Email, err)
	}
}

func formatOrderEvent(event models.OrderEvent) (title, message string, notifType models.NotificationType) {
	switch event.EventType {
	case "approved":
		return "Payment approved",
			"Your payment has been confirmed. Your course access is now active.",
			models.TypeOrderApproved
	case "rejected":
		return "Payment rejected",
			"We could not verify your payment. Please contact support or submit new payment details.",
			models.TypeOrderRejected
	default:
		return "Order update", "Your order status has changed.", models.TypeSystemMessage
	}
}
