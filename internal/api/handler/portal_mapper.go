package handler

import (
	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/view"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

const defaultHistoryLimit = 50

// toRefreshInput folds the submitted filter controls into the refresh request
// for one section. Only the fields of the requested section matter.
func toRefreshInput(section domain.Section, f sectionFilters) ports.RefreshInput {
	input := ports.RefreshInput{Section: section}

	switch section {
	case domain.SectionOrders:
		input.Orders = domain.OrderFilter{
			Status:       f.Status,
			Availability: f.Availability,
			Customer:     f.Customer,
		}
	case domain.SectionMaintenance:
		input.Maintenance = domain.MaintenanceFilter{
			Status:   f.Status,
			Priority: f.Priority,
			Customer: f.Customer,
		}
	case domain.SectionHistory:
		limit := f.Limit
		if limit <= 0 {
			limit = defaultHistoryLimit
		}
		input.History = domain.HistoryFilter{
			Type:  f.Type,
			Limit: limit,
		}
	}

	return input
}

// toPage assembles the render-ready page from the session, the section
// snapshot, and the filters echoed back into the form controls.
func toPage(sess *domain.Session, snap *domain.SectionSnapshot, f sectionFilters) view.Page {
	page := view.Page{
		Username: sess.User.Username,
		Role:     sess.User.Role,
		Active:   snap.Section,
		Phase:    snap.Phase,
		Error:    snap.Error,
	}

	switch snap.Section {
	case domain.SectionDashboard:
		page.Dashboard = view.Dashboard(snap.Stats)
	case domain.SectionOrders:
		page.Orders = view.OrderRows(snap.Orders)
		page.Filters.OrderStatus = f.Status
		page.Filters.OrderAvailability = f.Availability
		page.Filters.OrderCustomer = f.Customer
	case domain.SectionMaintenance:
		page.Maintenance = view.MaintenanceRows(snap.Maintenance)
		page.Filters.MaintenanceStatus = f.Status
		page.Filters.MaintenancePriority = f.Priority
		page.Filters.MaintenanceCustomer = f.Customer
	case domain.SectionHistory:
		page.History = view.HistoryRows(snap.History)
		page.Filters.HistoryType = f.Type
		page.Filters.HistoryLimit = f.Limit
		if page.Filters.HistoryLimit <= 0 {
			page.Filters.HistoryLimit = defaultHistoryLimit
		}
	}

	return page
}
