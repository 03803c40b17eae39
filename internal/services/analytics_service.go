package services

import (
	"context"
	"time"

	"elearning-app/internal/models"
	"elearning-app/internal/repository"
	"elearning-app/internal/utils"

	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "analytics:summary"

type MonthlyStat struct {
	Month   string  `json:"month"` // YYYY-MM
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type InstructorEarnings struct {
	InstructorID string  `json:"instructor_id"`
	Gross        float64 `json:"gross"`
	Commission   float64 `json:"commission"`
	Net          float64 `json:"net"`
	Orders       int64   `json:"orders"`
}

type DashboardSummary struct {
	Students         int64                    `json:"students"`
	Instructors      int64                    `json:"instructors"`
	PublishedCourses int64                    `json:"published_courses"`
	OrdersTotal      int64                    `json:"orders_total"`
	OrdersPending    int64                    `json:"orders_pending"`
	OrdersApproved   int64                    `json:"orders_approved"`
	TotalRevenue     float64                  `json:"total_revenue"`
	RevenueByPlan    []repository.PlanRevenue `json:"revenue_by_plan"`
	MonthlyApprovals []MonthlyStat            `json:"monthly_approvals"`
	Earnings         []InstructorEarnings     `json:"instructor_earnings"`
}

type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	courses   repository.CourseRepository
	settings  *SettingsService
	rdb       *redis.Client
	now       func() time.Time
}

func NewAnalyticsService(
	analytics repository.AnalyticsRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	courses repository.CourseRepository,
	settings *SettingsService,
	rdb *redis.Client,
) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		orders:    orders,
		users:     users,
		courses:   courses,
		settings:  settings,
		rdb:       rdb,
		now:       time.Now,
	}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if s.rdb != nil {
		var cached DashboardSummary
		if err := utils.GetCached(ctx, s.rdb, summaryCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		_ = utils.SetCached(ctx, s.rdb, summaryCacheKey, summary, utils.CacheDuration)
	}
	return summary, nil
}

func (s *AnalyticsService) buildSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	var err error

	if summary.Students, err = s.users.CountByRole(ctx, models.RoleStudent); err != nil {
		return nil, err
	}
	if summary.Instructors, err = s.users.CountByRole(ctx, models.RoleInstructor); err != nil {
		return nil, err
	}
	if summary.PublishedCourses, err = s.courses.CountByStatus(ctx, models.CoursePublished); err != nil {
		return nil, err
	}
	if summary.OrdersTotal, err = s.analytics.CountOrders(ctx, ""); err != nil {
		return nil, err
	}
	if summary.OrdersPending, err = s.analytics.CountOrders(ctx, models.PaymentPending); err != nil {
		return nil, err
	}
	if summary.OrdersApproved, err = s.analytics.CountOrders(ctx, models.PaymentApproved); err != nil {
		return nil, err
	}

	if summary.RevenueByPlan, err = s.analytics.RevenueByPlan(ctx); err != nil {
		return nil, err
	}
	for _, p := range summary.RevenueByPlan {
		summary.TotalRevenue += p.Revenue
	}

	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	approved, err := s.orders.ApprovedBetween(ctx, from, now)
	if err != nil {
		return nil, err
	}
	summary.MonthlyApprovals = RollupMonthly(approved, from, now)

	commission, err := s.settings.GetCommission(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.analytics.InstructorRevenue(ctx)
	if err != nil {
		return nil, err
	}
	summary.Earnings = SplitEarnings(revenue, commission.Percent)

	return summary, nil
}

// RollupMonthly buckets approved orders by the month their access window
// opened, emitting one entry per calendar month in [from, to] so the chart
// has no gaps.
func RollupMonthly(orders []models.Order, from, to time.Time) []MonthlyStat {
	byMonth := make(map[string]*MonthlyStat)
	var stats []MonthlyStat

	for cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(to); cursor = cursor.AddDate(0, 1, 0) {
		stats = append(stats, MonthlyStat{Month: cursor.Format("2006-01")})
	}
	for i := range stats {
		byMonth[stats[i].Month] = &stats[i]
	}

	for _, order := range orders {
		if order.StartDate == nil {
			continue
		}
		if stat, ok := byMonth[order.StartDate.UTC().Format("2006-01")]; ok {
			stat.Orders++
			stat.Revenue += order.Price
		}
	}
	return stats
}

// SplitEarnings applies the platform commission to gross instructor revenue.
func SplitEarnings(revenue []repository.InstructorRevenue, commissionPercent float64) []InstructorEarnings {
	out := make([]InstructorEarnings, 0, len(revenue))
	for _, r := range revenue {
		commission := r.Revenue * commissionPercent / 100
		out = append(out, InstructorEarnings{
			InstructorID: r.InstructorID.Hex(),
			Gross:        r.Revenue,
			Commission:   commission,
			Net:          r.Revenue - commission,
			Orders:       r.Orders,
		})
	}
	return out
}
