package analytics

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

// BookingCounts is the slice of the booking persistence layer the
// aggregator consumes.
type BookingCounts interface {
	CountByStatus(ctx context.Context, status models.BookingStatus) (int, error)
	CountAll(ctx context.Context) (int, error)
}

// Service aggregates booking analytics. Counts go through the booking
// persistence layer; revenue joins destinations in SQL directly since it
// sums a column from the joined table.
type Service struct {
	db       *bun.DB
	bookings BookingCounts
}

func NewService(db *bun.DB, bookings BookingCounts) *Service {
	return &Service{db: db, bookings: bookings}
}

// Metrics is the admin dashboard aggregate.
type Metrics struct {
	TotalUsers     int                          `json:"total_users"`
	TotalBookings  int                          `json:"total_bookings"`
	CountsByStatus map[models.BookingStatus]int `json:"counts_by_status"`
	MonthlyRevenue float64                      `json:"monthly_revenue"`
}

// CountByStatus returns the number of bookings in one status.
func (s *Service) CountByStatus(ctx context.Context, status models.BookingStatus) (int, error) {
	return s.bookings.CountByStatus(ctx, status)
}

// CountsByStatus returns an independent count per status value.
func (s *Service) CountsByStatus(ctx context.Context) (map[models.BookingStatus]int, error) {
	counts := make(map[models.BookingStatus]int, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		n, err := s.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}

// TotalBookings returns the overall booking count.
func (s *Service) TotalBookings(ctx context.Context) (int, error) {
	return s.bookings.CountAll(ctx)
}

// TotalUsers returns the overall registered-user count.
func (s *Service) TotalUsers(ctx context.Context) (int, error) {
	return s.db.NewSelect().
		Model((*models.User)(nil)).
		Count(ctx)
}

// MonthlyRevenue sums revenue over bookings travelling in the calendar month
// containing asOf with status APPROVED or COMPLETED. Each qualifying booking
// contributes its destination's unit price, with no traveler multiplier and
// no discount subtracted. Approximate, but that is the metric's intended
// definition.
func (s *Service) MonthlyRevenue(ctx context.Context, asOf time.Time) (float64, error) {
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var total float64
	err := s.db.NewSelect().
		ColumnExpr("COALESCE(SUM(d.price), 0.0)").
		TableExpr("bookings AS b").
		Join("JOIN destinations AS d ON d.id = b.destination_id").
		Where("b.travel_date >= ?", monthStart).
		Where("b.travel_date < ?", nextMonth).
		Where("b.status IN (?)", bun.In([]models.BookingStatus{models.StatusApproved, models.StatusCompleted})).
		Scan(ctx, &total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DashboardMetrics assembles the admin dashboard aggregate as of a date.
func (s *Service) DashboardMetrics(ctx context.Context, asOf time.Time) (*Metrics, error) {
	users, err := s.TotalUsers(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.TotalBookings(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.MonthlyRevenue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		TotalUsers:     users,
		TotalBookings:  bookings,
		CountsByStatus: counts,
		MonthlyRevenue: revenue,
	}, nil
}
