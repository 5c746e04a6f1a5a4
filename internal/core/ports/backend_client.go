package ports

import (
	"context"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// BackendClient consumes the upstream REST API. Every call forwards the
// ambient upstream session credential captured at login. Transport failures
// are reported as errors wrapping domain.ErrBackendUnavailable; non-2xx
// responses as *domain.UpstreamError.
type BackendClient interface {
	// ProbeSession asks the backend who the credential belongs to.
	ProbeSession(ctx context.Context, credential string) (*domain.User, error)
	// Login exchanges credentials for a user and an upstream session credential.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	// Logout invalidates the upstream session. Best-effort at call sites.
	Logout(ctx context.Context, credential string) error

	FetchStats(ctx context.Context, credential string) (*domain.DashboardStats, error)
	ListOrders(ctx context.Context, credential string, filter domain.OrderFilter) ([]domain.Order, error)
	ListMaintenance(ctx context.Context, credential string, filter domain.MaintenanceFilter) ([]domain.MaintenanceRequest, error)
	ListHistory(ctx context.Context, credential string, filter domain.HistoryFilter) ([]domain.HistoryEntry, error)

	GetOrder(ctx context.Context, credential string, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, credential string, id int64, update domain.OrderUpdate) error
	GetMaintenance(ctx context.Context, credential string, id int64) (*domain.MaintenanceRequest, error)
	UpdateMaintenance(ctx context.Context, credential string, id int64, update domain.MaintenanceUpdate) error
}
