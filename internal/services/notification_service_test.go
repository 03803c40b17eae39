package services

import (
	"context"
	"encoding/json"
	"testing"

	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeNotificationRepo struct {
	stored []*models.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, notif *models.Notification) error {
	notif.ID = primitive.NewObjectID()
	cp := *notif
	r.stored = append(r.stored, &cp)
	return nil
}

func (r *fakeNotificationRepo) ExistsByEventID(_ context.Context, eventID string) (bool, error) {
	for _, notif := range r.stored {
		if notif.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, notif := range r.stored {
		if notif.UserID == userID {
			out = append(out, *notif)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id primitive.ObjectID) error {
	for _, notif := range r.stored {
		if notif.ID == id {
			notif.IsRead = true
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(context.Context, *models.User) error { return nil }
func (fakeUserRepo) GetByID(context.Context, primitive.ObjectID) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (fakeUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, models.ErrNotFound
}
func (fakeUserRepo) List(context.Context, bson.M, int, int) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (fakeUserRepo) SetBanned(context.Context, primitive.ObjectID, bool) error { return nil }
func (fakeUserRepo) SetRole(context.Context, primitive.ObjectID, models.Role) error {
	return nil
}
func (fakeUserRepo) CountByRole(context.Context, models.Role) (int64, error) { return 0, nil }

func TestProcessEvent_DeduplicatesByEventID(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, fakeUserRepo{}, nil, nil)

	event := models.OrderEvent{
		EventID:   "evt-42",
		OrderID:   primitive.NewObjectID().Hex(),
		UserID:    primitive.NewObjectID().Hex(),
		EventType: "approved",
		PlanType:  "quarterly",
	}
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// redis pub/sub may redeliver, the second pass must be a no-op
	for i := 0; i < 2; i++ {
		if err := svc.ProcessEvent(context.Background(), payload); err != nil {
			t.Fatalf("ProcessEvent pass %d: %v", i+1, err)
		}
	}

	if len(repo.stored) != 1 {
		t.Fatalf("stored notifications = %d, want 1", len(repo.stored))
	}
	if repo.stored[0].Type != models.TypeOrderApproved {
		t.Errorf("type = %q, want order_approved", repo.stored[0].Type)
	}
	if repo.stored[0].Metadata["plan_type"] != "quarterly" {
		t.Errorf("metadata plan_type = %q, want quarterly", repo.stored[0].Metadata["plan_type"])
	}
}

func TestProcessEvent_RejectionMessage(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, fakeUserRepo{}, nil, nil)

	payload, _ := json.Marshal(models.OrderEvent{
		EventID:   "evt-43",
		UserID:    primitive.NewObjectID().Hex(),
		EventType: "rejected",
	})
	if err := svc.ProcessEvent(context.Background(), payload); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	if len(repo.stored) != 1 || repo.stored[0].Type != models.TypeOrderRejected {
		t.Fatalf("want one order_rejected notification, got %+v", repo.stored)
	}
}

func TestProcessEvent_BadPayload(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, fakeUserRepo{}, nil, nil)
	if err := svc.ProcessEvent(context.Background(), []byte("{not json")); err == nil {
		t.Error("malformed payload must fail")
	}
}
