package service

import (
	"context"
	"sort"

	"github.com/bacdepzai/orderdesk/internal/domain/enum"
	"github.com/bacdepzai/orderdesk/pkg/apperror"
)

const topCustomerCount = 5

// StatsService provides the owner's monthly figures
type StatsService struct {
	orders *OrderService
	now    Clock
}

// NewStatsService creates a new stats service
func NewStatsService(orders *OrderService, now Clock) *StatsService {
	if now == nil {
		now = SystemClock(nil)
	}
	return &StatsService{orders: orders, now: now}
}

// CustomerRevenue is one entry of the top customers list
type CustomerRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// MonthlyStats summarizes the orders dated in one month
type MonthlyStats struct {
	Month        string            `json:"month"`
	Revenue      float64           `json:"revenue"`
	Profit       float64           `json:"profit"`
	Count        int               `json:"count"`
	TopCustomers []CustomerRevenue `json:"top_customers"`
}

// CurrentMonth returns the month of today as "YYYY-MM".
func (s *StatsService) CurrentMonth() string {
	return s.now().Format("2006-01")
}

// Monthly returns revenue, profit and top customers for month ("YYYY-MM");
// an empty month means the current one. Owner only.
func (s *StatsService) Monthly(ctx context.Context, role enum.Role, month string) (*MonthlyStats, error) {
	if !role.IsOwner() {
		return nil, apperror.ErrOwnerOnly
	}
	if month == "" {
		month = s.CurrentMonth()
	}

	snaps, err := s.orders.OrdersInMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{Month: month, Count: len(snaps), TopCustomers: []CustomerRevenue{}}
	byCustomer := make(map[string]float64)
	var order []string
	for _, snap := range snaps {
		stats.Revenue += snap.Totals.GrandTotal
		stats.Profit += snap.Totals.Profit

		name := snap.Order.DisplayCustomer()
		if _, seen := byCustomer[name]; !seen {
			order = append(order, name)
		}
		byCustomer[name] += snap.Totals.GrandTotal
	}

	for _, name := range order {
		stats.TopCustomers = append(stats.TopCustomers, CustomerRevenue{Name: name, Revenue: byCustomer[name]})
	}
	sort.SliceStable(stats.TopCustomers, func(i, j int) bool {
		return stats.TopCustomers[i].Revenue > stats.TopCustomers[j].Revenue
	})
	if len(stats.TopCustomers) > topCustomerCount {
		stats.TopCustomers = stats.TopCustomers[:topCustomerCount]
	}
	return stats, nil
}
