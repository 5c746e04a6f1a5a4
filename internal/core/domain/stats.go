package domain

import "math"

// OrderCounts summarises orders by lifecycle state.
type OrderCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Delivered  int `json:"delivered"`
}

// MaintenanceCounts summarises maintenance requests.
type MaintenanceCounts struct {
	Total int `json:"total"`
}

// FinancialTotals summarises revenue as reported by the backend. Amounts are
// already in display form; no minor-unit conversion happens client-side.
type FinancialTotals struct {
	TotalRevenue   float64 `json:"total_revenue"`
	PaidRevenue    float64 `json:"paid_revenue"`
	PendingRevenue float64 `json:"pending_revenue"`
}

// DashboardStats is the aggregate payload of the backend stats endpoint.
type DashboardStats struct {
	Orders      OrderCounts       `json:"orders"`
	Maintenance MaintenanceCounts `json:"maintenance"`
	Financial   FinancialTotals   `json:"financial"`
}

// OrderPercentages holds the rounded share of each order state. Rounded values
// need not sum to exactly 100.
type OrderPercentages struct {
	Pending    int
	Processing int
	Delivered  int
}

// Percentages computes the status distribution for the dashboard bars. The
// divisor is floored to 1 so a backend report of zero orders yields 0% across
// the board instead of a division-by-zero fault.
func (c OrderCounts) Percentages() OrderPercentages {
	total := c.Total
	if total < 1 {
		total = 1
	}
	pct := func(part int) int {
		return int(math.Round(float64(part) / float64(total) * 100))
	}
	return OrderPercentages{
		Pending:    pct(c.Pending),
		Processing: pct(c.Processing),
		Delivered:  pct(c.Delivered),
	}
}
