package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"elearning-app/internal/config"
	"elearning-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = primitive.NewObjectID()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ bson.M, _, _ int) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Approve(_ context.Context, id primitive.ObjectID, start, end time.Time) (*models.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, false, models.ErrNotFound
	}
	if order.PaymentStatus == models.PaymentApproved {
		cp := *order
		return &cp, false, nil
	}
	order.PaymentStatus = models.PaymentApproved
	order.IsActive = true
	if order.StartDate == nil {
		order.StartDate = &start
	}
	if order.EndDate == nil {
		order.EndDate = &end
	}
	cp := *order
	return &cp, true, nil
}

func (r *fakeOrderRepo) Reject(_ context.Context, id primitive.ObjectID) (*models.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, false, models.ErrNotFound
	}
	if order.PaymentStatus == models.PaymentRejected {
		cp := *order
		return &cp, false, nil
	}
	order.PaymentStatus = models.PaymentRejected
	cp := *order
	return &cp, true, nil
}

func (r *fakeOrderRepo) SetEndDate(_ context.Context, id primitive.ObjectID, expected, newEnd time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok || order.EndDate == nil || !order.EndDate.Equal(expected) {
		return false, nil
	}
	order.EndDate = &newEnd
	return true, nil
}

func (r *fakeOrderRepo) ApprovedBetween(_ context.Context, from, to time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, order := range r.orders {
		if order.PaymentStatus != models.PaymentApproved || order.StartDate == nil {
			continue
		}
		if !order.StartDate.Before(from) && order.StartDate.Before(to) {
			out = append(out, *order)
		}
	}
	return out, nil
}

type capturingPublisher struct {
	events chan models.OrderEvent
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{events: make(chan models.OrderEvent, 10)}
}

func (p *capturingPublisher) PublishOrderEvent(_ context.Context, event models.OrderEvent) error {
	p.events <- event
	return nil
}

func (p *capturingPublisher) next(t *testing.T) models.OrderEvent {
	t.Helper()
	select {
	case event := <-p.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("expected an order event, got none")
		return models.OrderEvent{}
	}
}

func (p *capturingPublisher) none(t *testing.T) {
	t.Helper()
	select {
	case event := <-p.events:
		t.Fatalf("unexpected order event %q for order %s", event.EventType, event.OrderID)
	case <-time.After(100 * time.Millisecond):
	}
}

var testCfg = &config.Config{
	SingleAccessDays: 365,
	KitAccessDays:    365,
	SchoolAccessDays: 365,
}

func newTestOrderService(repo *fakeOrderRepo, pub OrderEventPublisher, now time.Time) *orderService {
	return &orderService{
		repo:      repo,
		publisher: pub,
		cfg:       testCfg,
		now:       func() time.Time { return now },
	}
}

func mustCreate(t *testing.T, svc OrderService, order *models.Order) *models.Order {
	t.Helper()
	if err := svc.Create(context.Background(), order); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return order
}

func quarterlyOrder() *models.Order {
	return &models.Order{
		UserID:          primitive.NewObjectID(),
		PlanType:        models.PlanQuarterly,
		Price:           1500,
		PaymentMethodID: "bkash",
		TransactionID:   "TX-1001",
	}
}

func TestCreate_StartsPendingWithoutWindow(t *testing.T) {
	svc := newTestOrderService(newFakeOrderRepo(), nil, time.Now())

	order := quarterlyOrder()
	order.PaymentStatus = models.PaymentApproved // must be ignored
	order.IsActive = true
	mustCreate(t, svc, order)

	if order.PaymentStatus != models.PaymentPending {
		t.Errorf("status = %q, want pending", order.PaymentStatus)
	}
	if order.StartDate != nil || order.EndDate != nil {
		t.Error("window must stay unopened until approval")
	}
	if order.IsActive {
		t.Error("new order must not be active")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestOrderService(newFakeOrderRepo(), nil, time.Now())
	courseID := primitive.NewObjectID()

	cases := []struct {
		name  string
		order *models.Order
	}{
		{"unknown plan", &models.Order{UserID: primitive.NewObjectID(), PlanType: "yearly"}},
		{"single without course", &models.Order{UserID: primitive.NewObjectID(), PlanType: models.PlanSingle}},
		{"quarterly with course", &models.Order{UserID: primitive.NewObjectID(), PlanType: models.PlanQuarterly, CourseID: &courseID}},
		{"kit without address", &models.Order{UserID: primitive.NewObjectID(), PlanType: models.PlanKit}},
		{"negative price", &models.Order{UserID: primitive.NewObjectID(), PlanType: models.PlanQuarterly, Price: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tc.order)
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("Create = %v, want ErrValidation", err)
			}
		})
	}
}

func TestApprove_OpensQuarterlyWindow(t *testing.T) {
	repo := newFakeOrderRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(repo, nil, now)

	order := mustCreate(t, svc, quarterlyOrder())
	approved, err := svc.Approve(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if approved.PaymentStatus != models.PaymentApproved || !approved.IsActive {
		t.Error("approval must activate the order")
	}
	if approved.StartDate == nil || !approved.StartDate.Equal(now) {
		t.Errorf("start = %v, want %v", approved.StartDate, now)
	}
	wantEnd := now.AddDate(0, 0, 90)
	if approved.EndDate == nil || !approved.EndDate.Equal(wantEnd) {
		t.Errorf("end = %v, want %v (90 days)", approved.EndDate, wantEnd)
	}
}

func TestApprove_IsIdempotent(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := newCapturingPublisher()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(repo, pub, now)

	order := mustCreate(t, svc, quarterlyOrder())
	first, err := svc.Approve(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	if event := pub.next(t); event.EventType != "approved" {
		t.Errorf("event type = %q, want approved", event.EventType)
	}

	// the second approval happens "later" and must not move the window
	svc.now = func() time.Time { return now.AddDate(0, 0, 30) }
	second, err := svc.Approve(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("second Approve: %v", err)
	}

	if !second.StartDate.Equal(*first.StartDate) || !second.EndDate.Equal(*first.EndDate) {
		t.Error("re-approval must not recompute the access window")
	}
	pub.none(t)
}

func TestReject_KeepsWindowForReapproval(t *testing.T) {
	repo := newFakeOrderRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(repo, nil, now)

	order := mustCreate(t, svc, quarterlyOrder())
	approved, err := svc.Approve(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	rejected, err := svc.Reject(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.PaymentStatus != models.PaymentRejected {
		t.Errorf("status = %q, want rejected", rejected.PaymentStatus)
	}
	if rejected.EndDate == nil || !rejected.EndDate.Equal(*approved.EndDate) {
		t.Error("rejection must not clear the opened window")
	}

	svc.now = func() time.Time { return now.AddDate(0, 1, 0) }
	reapproved, err := svc.Approve(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("re-Approve: %v", err)
	}
	if !reapproved.StartDate.Equal(*approved.StartDate) || !reapproved.EndDate.Equal(*approved.EndDate) {
		t.Error("re-approval after rejection must keep the original window")
	}
}

func TestExtendByDays_Accumulates(t *testing.T) {
	repo := newFakeOrderRepo()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestOrderService(repo, nil, now)

	order := mustCreate(t, svc, quarterlyOrder())
	approved, err := svc.Approve(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if _, err := svc.ExtendByDays(context.Background(), order.ID, 10); err != nil {
		t.Fatalf("first extend: %v", err)
	}
	extended, err := svc.ExtendByDays(context.Background(), order.ID, 5)
	if err != nil {
		t.Fatalf("second extend: %v", err)
	}

	want := approved.EndDate.AddDate(0, 0, 15)
	if !extended.EndDate.Equal(want) {
		t.Errorf("end = %v, want %v", extended.EndDate, want)
	}
}

func TestExtendByMonths_ClampsDayOfMonth(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo, nil, time.Now())

	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		PlanType:      models.PlanQuarterly,
		PaymentStatus: models.PaymentApproved,
		IsActive:      true,
		EndDate:       &end,
	}
	repo.orders[order.ID] = order

	extended, err := svc.ExtendByMonths(context.Background(), order.ID, 1)
	if err != nil {
		t.Fatalf("ExtendByMonths: %v", err)
	}
	want := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	if !extended.EndDate.Equal(want) {
		t.Errorf("end = %v, want %v", extended.EndDate, want)
	}
}

func TestExtend_RequiresOpenWindow(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestOrderService(repo, nil, time.Now())

	order := mustCreate(t, svc, quarterlyOrder())

	if _, err := svc.ExtendByMonths(context.Background(), order.ID, 1); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("ExtendByMonths on pending order = %v, want ErrInvalidState", err)
	}
	if _, err := svc.ExtendByDays(context.Background(), order.ID, 0); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("ExtendByDays(0) = %v, want ErrInvalidState", err)
	}
	if _, err := svc.ExtendByDays(context.Background(), order.ID, -3); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("ExtendByDays(-3) = %v, want ErrInvalidState", err)
	}
}

func TestAccessValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)
	past := now.AddDate(0, 0, -1)

	cases := []struct {
		name  string
		order models.Order
		want  bool
	}{
		{"active with future end", models.Order{IsActive: true, EndDate: &future}, true},
		{"expired", models.Order{IsActive: true, EndDate: &past}, false},
		{"end equals now", models.Order{IsActive: true, EndDate: &now}, false},
		{"inactive", models.Order{IsActive: false, EndDate: &future}, false},
		{"no window", models.Order{IsActive: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AccessValid(&tc.order, now); got != tc.want {
				t.Errorf("AccessValid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasCourseAccess_PlanMatrix(t *testing.T) {
	repo := newFakeOrderRepo()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestOrderService(repo, nil, now)

	userID := primitive.NewObjectID()
	boughtCourse := primitive.NewObjectID()
	otherCourse := primitive.NewObjectID()
	end := now.AddDate(0, 0, 30)

	seed := func(plan models.PlanType, courseID *primitive.ObjectID, active bool) {
		order := &models.Order{
			ID:            primitive.NewObjectID(),
			UserID:        userID,
			PlanType:      plan,
			CourseID:      courseID,
			PaymentStatus: models.PaymentApproved,
			IsActive:      active,
			EndDate:       &end,
		}
		repo.orders[order.ID] = order
	}

	check := func(courseID primitive.ObjectID, want bool) {
		t.Helper()
		got, err := svc.HasCourseAccess(context.Background(), userID, courseID)
		if err != nil {
			t.Fatalf("HasCourseAccess: %v", err)
		}
		if got != want {
			t.Errorf("HasCourseAccess = %v, want %v", got, want)
		}
	}

	// single order covers only its own course
	seed(models.PlanSingle, &boughtCourse, true)
	check(boughtCourse, true)
	check(otherCourse, false)

	// kit grants no content access
	repo.orders = make(map[primitive.ObjectID]*models.Order)
	seed(models.PlanKit, nil, true)
	check(boughtCourse, false)

	// school covers everything
	seed(models.PlanSchool, nil, true)
	check(otherCourse, true)
}

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		start  time.Time
		months int
		want   time.Time
	}{
		{time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 2, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), 3, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), 12, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := AddMonthsClamped(tc.start, tc.months); !got.Equal(tc.want) {
			t.Errorf("AddMonthsClamped(%v, %d) = %v, want %v", tc.start, tc.months, got, tc.want)
		}
	}
}
