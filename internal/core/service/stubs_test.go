package service

import (
	"context"
	"sync"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// stubBackend implements ports.BackendClient with per-call function hooks.
type stubBackend struct {
	probeFn             func(ctx context.Context, credential string) (*domain.User, error)
	loginFn             func(ctx context.Context, username, password string) (*domain.User, string, error)
	logoutFn            func(ctx context.Context, credential string) error
	fetchStatsFn        func(ctx context.Context, credential string) (*domain.DashboardStats, error)
	listOrdersFn        func(ctx context.Context, credential string, filter domain.OrderFilter) ([]domain.Order, error)
	listMaintenanceFn   func(ctx context.Context, credential string, filter domain.MaintenanceFilter) ([]domain.MaintenanceRequest, error)
	listHistoryFn       func(ctx context.Context, credential string, filter domain.HistoryFilter) ([]domain.HistoryEntry, error)
	getOrderFn          func(ctx context.Context, credential string, id int64) (*domain.Order, error)
	updateOrderFn       func(ctx context.Context, credential string, id int64, update domain.OrderUpdate) error
	getMaintenanceFn    func(ctx context.Context, credential string, id int64) (*domain.MaintenanceRequest, error)
	updateMaintenanceFn func(ctx context.Context, credential string, id int64, update domain.MaintenanceUpdate) error
}

func (b *stubBackend) ProbeSession(ctx context.Context, credential string) (*domain.User, error) {
	return b.probeFn(ctx, credential)
}

func (b *stubBackend) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	return b.loginFn(ctx, username, password)
}

func (b *stubBackend) Logout(ctx context.Context, credential string) error {
	if b.logoutFn == nil {
		return nil
	}
	return b.logoutFn(ctx, credential)
}

func (b *stubBackend) FetchStats(ctx context.Context, credential string) (*domain.DashboardStats, error) {
	return b.fetchStatsFn(ctx, credential)
}

func (b *stubBackend) ListOrders(ctx context.Context, credential string, filter domain.OrderFilter) ([]domain.Order, error) {
	return b.listOrdersFn(ctx, credential, filter)
}

func (b *stubBackend) ListMaintenance(ctx context.Context, credential string, filter domain.MaintenanceFilter) ([]domain.MaintenanceRequest, error) {
	return b.listMaintenanceFn(ctx, credential, filter)
}

func (b *stubBackend) ListHistory(ctx context.Context, credential string, filter domain.HistoryFilter) ([]domain.HistoryEntry, error) {
	return b.listHistoryFn(ctx, credential, filter)
}

func (b *stubBackend) GetOrder(ctx context.Context, credential string, id int64) (*domain.Order, error) {
	return b.getOrderFn(ctx, credential, id)
}

func (b *stubBackend) UpdateOrder(ctx context.Context, credential string, id int64, update domain.OrderUpdate) error {
	return b.updateOrderFn(ctx, credential, id, update)
}

func (b *stubBackend) GetMaintenance(ctx context.Context, credential string, id int64) (*domain.MaintenanceRequest, error) {
	return b.getMaintenanceFn(ctx, credential, id)
}

func (b *stubBackend) UpdateMaintenance(ctx context.Context, credential string, id int64, update domain.MaintenanceUpdate) error {
	return b.updateMaintenanceFn(ctx, credential, id, update)
}

// stubStore is an in-memory ports.SessionStore.
type stubStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sess
	s.sessions[sess.SID] = &clone
	return nil
}

func (s *stubStore) Find(_ context.Context, sid string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

func (s *stubStore) has(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sid]
	return ok
}

// stubAudit collects recorded events.
type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(_ context.Context, event *domain.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, *event)
	return nil
}

func (a *stubAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}
