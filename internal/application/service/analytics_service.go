package service

import (
	"context"
	"sort"
	"time"

	"github.com/chaatgpt/till/internal/domain/entity"
	"github.com/chaatgpt/till/internal/domain/enum"
	"github.com/chaatgpt/till/pkg/apperror"
)

// ProductSales is the per-product aggregate of a reporting period
type ProductSales struct {
	Name          string       `json:"name"`
	OrderCount    int          `json:"order_count"`
	TotalQuantity int          `json:"total_quantity"`
	TotalRevenue  entity.Money `json:"total_revenue"`
}

// AggregateByProduct groups the item lines of bills in the period by
// product name. Daily covers today; weekly covers bills dated on or after
// local midnight seven days ago. Results are sorted by quantity, highest
// first, keeping first-seen order between equal quantities.
func AggregateByProduct(bills []entity.Bill, period enum.ReportPeriod, now time.Time, loc *time.Location) []ProductSales {
	today := startOfDay(now, loc)
	from := today
	if period == enum.ReportPeriodWeekly {
		from = today.AddDate(0, 0, -7)
	}

	index := make(map[string]int)
	stats := []ProductSales{}
	for i := range bills {
		day := bills[i].Day(loc)
		if period == enum.ReportPeriodDaily && !day.Equal(today) {
			continue
		}
		if period == enum.ReportPeriodWeekly && day.Before(from) {
			continue
		}

		for _, item := range bills[i].Items {
			idx, ok := index[item.Name]
			if !ok {
				idx = len(stats)
				index[item.Name] = idx
				stats = append(stats, ProductSales{Name: item.Name})
			}
			stats[idx].OrderCount++
			stats[idx].TotalQuantity += item.Quantity
			stats[idx].TotalRevenue += item.Total
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalQuantity > stats[j].TotalQuantity
	})
	return stats
}

// AnalyticsService reports product sales over the EOD ledger
type AnalyticsService struct {
	ledger *LedgerService
	clock  Clock
	loc    *time.Location
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(ledger *LedgerService, clock Clock, loc *time.Location) *AnalyticsService {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{ledger: ledger, clock: clock, loc: loc}
}

// ProductReport aggregates the ledger for a period given by name
func (s *AnalyticsService) ProductReport(ctx context.Context, period string) ([]ProductSales, error) {
	p, ok := enum.ParseReportPeriod(period)
	if !ok {
		return nil, apperror.ErrInvalidPeriod
	}
	return s.AggregateByProduct(ctx, p)
}

// AggregateByProduct aggregates the ledger for a period
func (s *AnalyticsService) AggregateByProduct(ctx context.Context, period enum.ReportPeriod) ([]ProductSales, error) {
	bills, err := s.ledger.Bills(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateByProduct(bills, period, s.clock(), s.loc), nil
}
