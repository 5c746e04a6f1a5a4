package view

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// currencyTag is the fixed literal prefixed to every amount. Amounts are
// rendered with locale-grouped thousands separators and no further rounding.
const currencyTag = "NPR"

const problemSummaryLen = 50

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount as e.g. "NPR 12,000".
func FormatCurrency(amount float64) string {
	return printer.Sprintf("%s %v", currencyTag, number.Decimal(amount))
}

// OrderRow is the render-ready projection of one order.
type OrderRow struct {
	ID                int64
	CustomerName      string
	CustomerPhone     string
	TotalDisplay      string
	PaymentStatus     string
	PaymentClass      string
	PartialPaid       bool
	PaidDisplay       string
	Status            string
	StatusClass       string
	Available         bool
	AvailabilityLabel string
}

// OrderRows derives rows deterministically from backend records, preserving
// the backend's ordering.
func OrderRows(orders []domain.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		row := OrderRow{
			ID:                o.ID,
			CustomerName:      o.CustomerName,
			CustomerPhone:     o.CustomerPhone,
			TotalDisplay:      FormatCurrency(o.TotalValue),
			PaymentStatus:     o.PaymentStatus,
			PaymentClass:      statusClass(o.PaymentStatus),
			Status:            o.Status,
			StatusClass:       statusClass(o.Status),
			Available:         o.ProductAvailable,
			AvailabilityLabel: "Unavailable",
		}
		if o.ProductAvailable {
			row.AvailabilityLabel = "Available"
		}
		// The paid sub-line only appears for partial payments.
		if o.PaymentMethod == "Partial" {
			row.PartialPaid = true
			row.PaidDisplay = FormatCurrency(o.PaidAmount)
		}
		rows = append(rows, row)
	}
	return rows
}

// MaintenanceRow is the render-ready projection of one maintenance request.
type MaintenanceRow struct {
	ID             int64
	CustomerName   string
	CustomerPhone  string
	DeviceType     string
	ProblemSummary string
	Priority       string
	PriorityClass  string
	Status         string
	StatusClass    string
	RiderName      string
}

func MaintenanceRows(requests []domain.MaintenanceRequest) []MaintenanceRow {
	rows := make([]MaintenanceRow, 0, len(requests))
	for _, m := range requests {
		rider := m.RiderName
		if rider == "" {
			rider = "Not Assigned"
		}
		rows = append(rows, MaintenanceRow{
			ID:             m.ID,
			CustomerName:   m.CustomerName,
			CustomerPhone:  m.CustomerPhone,
			DeviceType:     m.DeviceType,
			ProblemSummary: summarize(m.ProblemDescription),
			Priority:       m.Priority,
			PriorityClass:  "priority-" + strings.ToLower(m.Priority),
			Status:         m.Status,
			StatusClass:    statusClass(m.Status),
			RiderName:      rider,
		})
	}
	return rows
}

// HistoryRow is the render-ready projection of one completed job.
type HistoryRow struct {
	TypeLabel      string
	TypeClass      string
	JobTitle       string
	CustomerName   string
	CustomerPhone  string
	CompletionDate string
	FinalStatus    string
	StatusClass    string
	AmountDisplay  string
}

func HistoryRows(entries []domain.HistoryEntry) []HistoryRow {
	rows := make([]HistoryRow, 0, len(entries))
	for _, h := range entries {
		phone := h.CustomerPhone
		if phone == "" {
			phone = "N/A"
		}
		amount := "N/A"
		if h.TotalAmount != 0 {
			amount = FormatCurrency(h.TotalAmount)
		}
		typeClass := "bg-warning"
		if h.JobType == "order" {
			typeClass = "bg-primary"
		}
		rows = append(rows, HistoryRow{
			TypeLabel:      strings.ToUpper(h.JobType),
			TypeClass:      typeClass,
			JobTitle:       h.JobTitle,
			CustomerName:   h.CustomerName,
			CustomerPhone:  phone,
			CompletionDate: formatDate(h.CompletionDate),
			FinalStatus:    h.FinalStatus,
			StatusClass:    statusClass(h.FinalStatus),
			AmountDisplay:  amount,
		})
	}
	return rows
}

// DashboardView is the render-ready projection of the stats payload.
type DashboardView struct {
	TotalOrders      int
	PendingOrders    int
	TotalMaintenance int
	TotalRevenue     string
	PaidRevenue      string
	PendingRevenue   string
	Percentages      domain.OrderPercentages
}

func Dashboard(stats *domain.DashboardStats) *DashboardView {
	if stats == nil {
		return nil
	}
	return &DashboardView{
		TotalOrders:      stats.Orders.Total,
		PendingOrders:    stats.Orders.Pending,
		TotalMaintenance: stats.Maintenance.Total,
		TotalRevenue:     FormatCurrency(stats.Financial.TotalRevenue),
		PaidRevenue:      FormatCurrency(stats.Financial.PaidRevenue),
		PendingRevenue:   FormatCurrency(stats.Financial.PendingRevenue),
		Percentages:      stats.Orders.Percentages(),
	}
}

func statusClass(status string) string {
	return "status-" + strings.ToLower(strings.ReplaceAll(status, " ", "-"))
}

// summarize shortens a problem description to a fixed-width listing summary.
func summarize(description string) string {
	runes := []rune(description)
	if len(runes) <= problemSummaryLen {
		return description
	}
	return string(runes[:problemSummaryLen]) + "..."
}

// formatDate renders a backend timestamp as a plain date. Unparseable values
// pass through untouched.
func formatDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}
