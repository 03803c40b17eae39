package services

import (
	"testing"
	"time"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func approvedAt(start time.Time, price float64) models.Order {
	return models.Order{
		PaymentStatus: models.PaymentApproved,
		StartDate:     &start,
		Price:         price,
	}
}

func TestRollupMonthly_GaplessBuckets(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		approvedAt(time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), 500),
		approvedAt(time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC), 700),
		approvedAt(time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC), 300),
		{PaymentStatus: models.PaymentApproved, Price: 999}, // no window yet, skipped
	}

	stats := RollupMonthly(orders, from, to)
	if len(stats) != 4 {
		t.Fatalf("buckets = %d, want 4 (Jan..Apr)", len(stats))
	}

	if stats[0].Month != "2025-01" || stats[0].Orders != 2 || stats[0].Revenue != 1200 {
		t.Errorf("January = %+v, want 2 orders / 1200", stats[0])
	}
	// February and March have no orders but must still be present
	if stats[1].Month != "2025-02" || stats[1].Orders != 0 {
		t.Errorf("February = %+v, want empty bucket", stats[1])
	}
	if stats[2].Month != "2025-03" || stats[2].Orders != 0 {
		t.Errorf("March = %+v, want empty bucket", stats[2])
	}
	if stats[3].Month != "2025-04" || stats[3].Orders != 1 || stats[3].Revenue != 300 {
		t.Errorf("April = %+v, want 1 order / 300", stats[3])
	}
}

func TestSplitEarnings(t *testing.T) {
	instructorID := primitive.NewObjectID()
	revenue := []repository.InstructorRevenue{
		{InstructorID: instructorID, Revenue: 1000, Orders: 4},
	}

	earnings := SplitEarnings(revenue, 30)
	if len(earnings) != 1 {
		t.Fatalf("earnings = %d entries, want 1", len(earnings))
	}

	got := earnings[0]
	if got.InstructorID != instructorID.Hex() {
		t.Errorf("instructor_id = %s, want %s", got.InstructorID, instructorID.Hex())
	}
	if got.Commission != 300 || got.Net != 700 {
		t.Errorf("split = %.0f commission / %.0f net, want 300 / 700", got.Commission, got.Net)
	}
}

func TestSplitEarnings_ZeroCommission(t *testing.T) {
	revenue := []repository.InstructorRevenue{
		{InstructorID: primitive.NewObjectID(), Revenue: 450, Orders: 2},
	}

	earnings := SplitEarnings(revenue, 0)
	if earnings[0].Commission != 0 || earnings[0].Net != 450 {
		t.Errorf("with 0%% commission net must equal gross, got %+v", earnings[0])
	}
}
