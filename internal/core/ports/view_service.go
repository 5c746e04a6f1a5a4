package ports

import (
	"context"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// RefreshInput carries the section to refresh together with the FilterState
// read from that section's form controls at fetch time.
type RefreshInput struct {
	Section     domain.Section
	Orders      domain.OrderFilter
	Maintenance domain.MaintenanceFilter
	History     domain.HistoryFilter
}

// ViewService is the view coordinator: it owns which section is active per
// session and drives data refresh for it. Refreshes carry a per-section
// generation token; a response belonging to a superseded generation is
// discarded so a slow, stale fetch can never overwrite newer state.
type ViewService interface {
	// ActivateSection makes the section the single active one for the session
	// and refreshes it. The returned snapshot reflects the refresh outcome.
	ActivateSection(ctx context.Context, sid string, input RefreshInput) (*domain.SectionSnapshot, error)

	// RefreshSection re-fetches a section without changing which one is
	// active. Used by the dashboard poller and after record edits.
	RefreshSection(ctx context.Context, sid string, input RefreshInput) (*domain.SectionSnapshot, error)

	// ActiveSection reports the session's current section.
	ActiveSection(sid string) (domain.Section, bool)

	// Snapshot returns the last rendered state of a section, if any.
	Snapshot(sid string, section domain.Section) (*domain.SectionSnapshot, bool)

	// EditOrder fetches the full editable record for the edit modal.
	EditOrder(ctx context.Context, sid string, id int64) (*domain.Order, error)
	// UpdateOrder submits the edit and re-refreshes the active section so the
	// listing reflects the change via full refetch.
	UpdateOrder(ctx context.Context, sid string, id int64, update domain.OrderUpdate, input RefreshInput) (*domain.SectionSnapshot, error)

	EditMaintenance(ctx context.Context, sid string, id int64) (*domain.MaintenanceRequest, error)
	UpdateMaintenance(ctx context.Context, sid string, id int64, update domain.MaintenanceUpdate, input RefreshInput) (*domain.SectionSnapshot, error)

	// DropSession discards all view state for a session on logout.
	DropSession(sid string)

	// DashboardSessions lists sessions whose active section is the dashboard,
	// for the auto-refresh poller.
	DashboardSessions() []string
}
