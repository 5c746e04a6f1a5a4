package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/view"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// PortalHandler serves the section views and the record edit flows.
type PortalHandler struct {
	views ports.ViewService
}

func NewPortalHandler(views ports.ViewService) *PortalHandler {
	return &PortalHandler{views: views}
}

// Section activates the requested section for the session, refreshes it with
// the submitted filters, and renders the portal with that section visible.
func (h *PortalHandler) Section(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	section, err := domain.ParseSection(c.Param("section"))
	if err != nil {
		return err
	}

	var filters sectionFilters
	if err := c.Bind(&filters); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filters")
	}
	if err := c.Validate(&filters); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.views.ActivateSection(c.Request().Context(), sess.SID, toRefreshInput(section, filters))
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "portal", toPage(sess, snap, filters))
}

// EditOrder renders the edit overlay for one order, freshly fetched so the
// form never shows stale listing data.
func (h *PortalHandler) EditOrder(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	id, err := recordID(c)
	if err != nil {
		return err
	}

	order, err := h.views.EditOrder(c.Request().Context(), sess.SID, id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit_order", view.OrderModal{Order: *order})
}

// UpdateOrder submits the edit and sends the browser back to the listing; the
// redirect's GET refetches it, so the row always reflects the stored record.
func (h *PortalHandler) UpdateOrder(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	id, err := recordID(c)
	if err != nil {
		return err
	}

	var req orderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := domain.OrderUpdate{
		Status:           req.Status,
		PaymentStatus:    req.PaymentStatus,
		ProductAvailable: req.ProductAvailable == "true",
	}
	input := toRefreshInput(domain.SectionOrders, sectionFilters{})
	if _, err := h.views.UpdateOrder(c.Request().Context(), sess.SID, id, update, input); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/portal/orders")
}

// EditMaintenance renders the edit overlay for one maintenance request.
func (h *PortalHandler) EditMaintenance(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	id, err := recordID(c)
	if err != nil {
		return err
	}

	request, err := h.views.EditMaintenance(c.Request().Context(), sess.SID, id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit_maintenance", view.MaintenanceModal{Request: *request})
}

// UpdateMaintenance submits the edit and redirects back to the listing.
func (h *PortalHandler) UpdateMaintenance(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	id, err := recordID(c)
	if err != nil {
		return err
	}

	var req maintenanceUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := domain.MaintenanceUpdate{
		Status:    req.Status,
		Priority:  req.Priority,
		RiderName: req.RiderName,
	}
	input := toRefreshInput(domain.SectionMaintenance, sectionFilters{})
	if _, err := h.views.UpdateMaintenance(c.Request().Context(), sess.SID, id, update, input); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/portal/maintenance")
}

func recordID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	return id, nil
}
