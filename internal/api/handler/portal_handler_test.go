package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("session", testSession())
	return c
}

func TestPortalHandler_Section_RendersOrders(t *testing.T) {
	e := newEcho()
	views := &stubViewService{
		activateFn: func(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
			if sid != "SP-1" || input.Section != domain.SectionOrders {
				t.Fatalf("unexpected refresh input: %s %s", sid, input.Section)
			}
			if input.Orders.Status != "Pending" || input.Orders.Customer != "Sita" {
				t.Fatalf("filters not forwarded: %+v", input.Orders)
			}
			return &domain.SectionSnapshot{
				Section:   domain.SectionOrders,
				Phase:     domain.PhaseLoaded,
				UpdatedAt: time.Now(),
				Orders: []domain.Order{
					{ID: 7, CustomerName: "Sita", TotalValue: 12000, Status: "Pending", PaymentStatus: "Pending"},
				},
			}, nil
		},
	}
	h := NewPortalHandler(views)

	req := httptest.NewRequest(http.MethodGet, "/portal/orders?status=Pending&customer=Sita", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("section")
	c.SetParamValues("orders")

	if err := h.Section(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "ordersSection") || !strings.Contains(body, "Sita") {
		t.Fatalf("orders listing not rendered")
	}
	if !strings.Contains(body, "NPR 12,000") {
		t.Fatalf("currency not formatted")
	}
	if !strings.Contains(body, `value="Pending" selected`) {
		t.Fatalf("status filter not echoed back")
	}
}

func TestPortalHandler_Section_Unknown(t *testing.T) {
	e := newEcho()
	h := NewPortalHandler(&stubViewService{})

	req := httptest.NewRequest(http.MethodGet, "/portal/reports", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("section")
	c.SetParamValues("reports")

	err := h.Section(c)
	if !errors.Is(err, domain.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestPortalHandler_Section_FailedRefreshStillRenders(t *testing.T) {
	e := newEcho()
	views := &stubViewService{
		activateFn: func(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
			return &domain.SectionSnapshot{
				Section: domain.SectionDashboard,
				Phase:   domain.PhaseFailed,
				Error:   "Cannot reach the server. Please try again.",
			}, nil
		},
	}
	h := NewPortalHandler(views)

	req := httptest.NewRequest(http.MethodGet, "/portal/dashboard", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("section")
	c.SetParamValues("dashboard")

	if err := h.Section(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("a failed refresh must still render the page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Cannot reach the server") {
		t.Fatalf("section error not shown")
	}
}

func TestPortalHandler_EditOrder(t *testing.T) {
	e := newEcho()
	views := &stubViewService{
		editOrderFn: func(ctx context.Context, sid string, id int64) (*domain.Order, error) {
			if id != 7 {
				t.Fatalf("unexpected id: %d", id)
			}
			return &domain.Order{ID: 7, CustomerName: "Sita", Status: "Pending"}, nil
		},
	}
	h := NewPortalHandler(views)

	req := httptest.NewRequest(http.MethodGet, "/portal/orders/7/edit", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.EditOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Edit Order #7") {
		t.Fatalf("modal not rendered")
	}
}

func TestPortalHandler_EditOrder_NotFound(t *testing.T) {
	e := newEcho()
	views := &stubViewService{
		editOrderFn: func(ctx context.Context, sid string, id int64) (*domain.Order, error) {
			return nil, domain.ErrRecordNotFound
		},
	}
	h := NewPortalHandler(views)

	req := httptest.NewRequest(http.MethodGet, "/portal/orders/99/edit", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.EditOrder(c); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestPortalHandler_UpdateOrder(t *testing.T) {
	e := newEcho()
	var got domain.OrderUpdate
	views := &stubViewService{
		updateOrderFn: func(ctx context.Context, sid string, id int64, update domain.OrderUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
			if id != 7 {
				t.Fatalf("unexpected id: %d", id)
			}
			got = update
			return &domain.SectionSnapshot{Section: domain.SectionOrders, Phase: domain.PhaseLoaded}, nil
		},
	}
	h := NewPortalHandler(views)

	body := strings.NewReader("status=Delivered&payment_status=Paid&product_available=true")
	req := httptest.NewRequest(http.MethodPost, "/portal/orders/7", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.UpdateOrder(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Status != "Delivered" || got.PaymentStatus != "Paid" || !got.ProductAvailable {
		t.Fatalf("update not forwarded: %+v", got)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/portal/orders" {
		t.Fatalf("expected redirect back to the listing, got %d", rec.Code)
	}
}

func TestPortalHandler_UpdateOrder_InvalidStatus(t *testing.T) {
	e := newEcho()
	h := NewPortalHandler(&stubViewService{})

	body := strings.NewReader("status=Shipped&payment_status=Paid")
	req := httptest.NewRequest(http.MethodPost, "/portal/orders/7", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := h.UpdateOrder(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPortalHandler_UpdateMaintenance(t *testing.T) {
	e := newEcho()
	var got domain.MaintenanceUpdate
	views := &stubViewService{
		updateMaintenanceFn: func(ctx context.Context, sid string, id int64, update domain.MaintenanceUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
			got = update
			return &domain.SectionSnapshot{Section: domain.SectionMaintenance, Phase: domain.PhaseLoaded}, nil
		},
	}
	h := NewPortalHandler(views)

	body := strings.NewReader("status=In+Progress&priority=High&rider_name=Hari")
	req := httptest.NewRequest(http.MethodPost, "/portal/maintenance/3", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.UpdateMaintenance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Status != "In Progress" || got.Priority != "High" || got.RiderName != "Hari" {
		t.Fatalf("update not forwarded: %+v", got)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/portal/maintenance" {
		t.Fatalf("expected redirect back to the listing, got %d", rec.Code)
	}
}

func TestPortalHandler_InvalidRecordID(t *testing.T) {
	e := newEcho()
	h := NewPortalHandler(&stubViewService{})

	req := httptest.NewRequest(http.MethodGet, "/portal/orders/abc/edit", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.EditOrder(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
