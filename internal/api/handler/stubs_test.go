package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/view"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// newEcho builds an echo instance with the renderer and validator the real
// router installs, so handler tests exercise template output end to end.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.NewRenderer()
	e.Validator = NewValidator()
	return e
}

type stubSessionService struct {
	probeFn   func(ctx context.Context, sid string) (*domain.Session, error)
	loginFn   func(ctx context.Context, username, password string) (*domain.Session, string, error)
	logoutFn  func(ctx context.Context, sid string)
	resolveFn func(ctx context.Context, sid string) (*domain.Session, error)
	parseFn   func(token string) (string, error)
}

func (s *stubSessionService) Probe(ctx context.Context, sid string) (*domain.Session, error) {
	return s.probeFn(ctx, sid)
}

func (s *stubSessionService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubSessionService) Logout(ctx context.Context, sid string) {
	if s.logoutFn != nil {
		s.logoutFn(ctx, sid)
	}
}

func (s *stubSessionService) Resolve(ctx context.Context, sid string) (*domain.Session, error) {
	return s.resolveFn(ctx, sid)
}

func (s *stubSessionService) ParseToken(token string) (string, error) {
	return s.parseFn(token)
}

type stubViewService struct {
	activateFn          func(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error)
	refreshFn           func(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error)
	activeFn            func(sid string) (domain.Section, bool)
	editOrderFn         func(ctx context.Context, sid string, id int64) (*domain.Order, error)
	updateOrderFn       func(ctx context.Context, sid string, id int64, update domain.OrderUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error)
	editMaintenanceFn   func(ctx context.Context, sid string, id int64) (*domain.MaintenanceRequest, error)
	updateMaintenanceFn func(ctx context.Context, sid string, id int64, update domain.MaintenanceUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error)
	dropped             []string
}

func (s *stubViewService) ActivateSection(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	return s.activateFn(ctx, sid, input)
}

func (s *stubViewService) RefreshSection(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	return s.refreshFn(ctx, sid, input)
}

func (s *stubViewService) ActiveSection(sid string) (domain.Section, bool) {
	if s.activeFn == nil {
		return "", false
	}
	return s.activeFn(sid)
}

func (s *stubViewService) Snapshot(sid string, section domain.Section) (*domain.SectionSnapshot, bool) {
	return nil, false
}

func (s *stubViewService) EditOrder(ctx context.Context, sid string, id int64) (*domain.Order, error) {
	return s.editOrderFn(ctx, sid, id)
}

func (s *stubViewService) UpdateOrder(ctx context.Context, sid string, id int64, update domain.OrderUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	return s.updateOrderFn(ctx, sid, id, update, input)
}

func (s *stubViewService) EditMaintenance(ctx context.Context, sid string, id int64) (*domain.MaintenanceRequest, error) {
	return s.editMaintenanceFn(ctx, sid, id)
}

func (s *stubViewService) UpdateMaintenance(ctx context.Context, sid string, id int64, update domain.MaintenanceUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	return s.updateMaintenanceFn(ctx, sid, id, update, input)
}

func (s *stubViewService) DropSession(sid string) {
	s.dropped = append(s.dropped, sid)
}

func (s *stubViewService) DashboardSessions() []string { return nil }

func testSession() *domain.Session {
	return &domain.Session{
		SID:  "SP-1",
		User: domain.User{Username: "ramesh", Role: domain.RoleSales},
	}
}
