package domain

// FilterAll is the sentinel a form control reports when no narrowing is
// selected. A filter holding this value (or empty) is omitted from the backend
// query entirely; omission and an explicit "all" may differ upstream.
const FilterAll = "all"

// Order is a read-only projection of a backend order record.
type Order struct {
	ID               int64   `json:"id"`
	CustomerName     string  `json:"customer_name"`
	CustomerPhone    string  `json:"customer_phone"`
	TotalValue       float64 `json:"total_value"`
	PaymentStatus    string  `json:"payment_status"`
	PaymentMethod    string  `json:"payment_method"`
	PaidAmount       float64 `json:"paid_amount"`
	Status           string  `json:"status"`
	ProductAvailable bool    `json:"product_available"`
}

// MaintenanceRequest is a read-only projection of a backend maintenance record.
type MaintenanceRequest struct {
	ID                 int64  `json:"id"`
	CustomerName       string `json:"customer_name"`
	CustomerPhone      string `json:"customer_phone"`
	DeviceType         string `json:"device_type"`
	ProblemDescription string `json:"problem_description"`
	Priority           string `json:"priority"`
	Status             string `json:"status"`
	RiderName          string `json:"rider_name"`
}

// HistoryEntry is a completed job as returned by the backend history listing.
type HistoryEntry struct {
	JobType        string  `json:"job_type"`
	JobTitle       string  `json:"job_title"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	CompletionDate string  `json:"completion_date"`
	FinalStatus    string  `json:"final_status"`
	TotalAmount    float64 `json:"total_amount"`
}

// OrderFilter narrows the orders listing. Zero values and FilterAll mean "no
// constraint".
type OrderFilter struct {
	Status       string
	Availability string
	Customer     string
}

// MaintenanceFilter narrows the maintenance listing.
type MaintenanceFilter struct {
	Status   string
	Priority string
	Customer string
}

// HistoryFilter narrows the history listing. Limit is always sent; only Type
// has an "all" sentinel.
type HistoryFilter struct {
	Type  string
	Limit int
}

// OrderUpdate carries the editable fields submitted from the order edit form.
type OrderUpdate struct {
	Status           string `json:"status"`
	PaymentStatus    string `json:"payment_status"`
	ProductAvailable bool   `json:"product_available"`
}

// MaintenanceUpdate carries the editable fields for a maintenance record.
type MaintenanceUpdate struct {
	Status    string `json:"status"`
	Priority  string `json:"priority"`
	RiderName string `json:"rider_name"`
}
