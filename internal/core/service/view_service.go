package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// sectionState tracks one section of one session. lastIssued is the refresh
// generation token: each refresh bumps it before fetching and compares after,
// so a slow response that was superseded mid-flight is discarded instead of
// overwriting newer state.
type sectionState struct {
	lastIssued uint64
	snapshot   *domain.SectionSnapshot
}

type viewState struct {
	active   domain.Section
	sections map[domain.Section]*sectionState
}

// ViewService is the view coordinator. Snapshots are immutable after publish:
// a refresh always installs a freshly built SectionSnapshot, never mutates one
// in place, so handlers may render a returned snapshot without locking.
type ViewService struct {
	backend ports.BackendClient
	store   ports.SessionStore
	audit   ports.AuditRepository
	log     zerolog.Logger

	mu     sync.Mutex
	states map[string]*viewState
}

func NewViewService(backend ports.BackendClient, store ports.SessionStore, audit ports.AuditRepository, log zerolog.Logger) *ViewService {
	return &ViewService{
		backend: backend,
		store:   store,
		audit:   audit,
		log:     log,
		states:  make(map[string]*viewState),
	}
}

func (s *ViewService) ActivateSection(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	return s.refresh(ctx, sid, input, true)
}

func (s *ViewService) RefreshSection(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	return s.refresh(ctx, sid, input, false)
}

func (s *ViewService) ActiveSection(sid string) (domain.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.states[sid]
	if !ok || vs.active == "" {
		return "", false
	}
	return vs.active, true
}

func (s *ViewService) Snapshot(sid string, section domain.Section) (*domain.SectionSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.states[sid]
	if !ok {
		return nil, false
	}
	ss, ok := vs.sections[section]
	if !ok || ss.snapshot == nil {
		return nil, false
	}
	return ss.snapshot, true
}

func (s *ViewService) EditOrder(ctx context.Context, sid string, id int64) (*domain.Order, error) {
	sess, err := s.resolve(ctx, sid)
	if err != nil {
		return nil, err
	}
	return s.backend.GetOrder(ctx, sess.UpstreamCookie, id)
}

func (s *ViewService) UpdateOrder(ctx context.Context, sid string, id int64, update domain.OrderUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	sess, err := s.resolve(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := s.backend.UpdateOrder(ctx, sess.UpstreamCookie, id, update); err != nil {
		return nil, err
	}
	s.record(ctx, sess, domain.AuditOrderUpdated, id)
	return s.refreshActive(ctx, sid, input)
}

func (s *ViewService) EditMaintenance(ctx context.Context, sid string, id int64) (*domain.MaintenanceRequest, error) {
	sess, err := s.resolve(ctx, sid)
	if err != nil {
		return nil, err
	}
	return s.backend.GetMaintenance(ctx, sess.UpstreamCookie, id)
}

func (s *ViewService) UpdateMaintenance(ctx context.Context, sid string, id int64, update domain.MaintenanceUpdate, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	sess, err := s.resolve(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := s.backend.UpdateMaintenance(ctx, sess.UpstreamCookie, id, update); err != nil {
		return nil, err
	}
	s.record(ctx, sess, domain.AuditMaintenanceUpdated, id)
	return s.refreshActive(ctx, sid, input)
}

func (s *ViewService) DropSession(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sid)
}

func (s *ViewService) DashboardSessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sids []string
	for sid, vs := range s.states {
		if vs.active == domain.SectionDashboard {
			sids = append(sids, sid)
		}
	}
	return sids
}

// refreshActive re-runs the refresh for whichever section is currently
// active. Edits land here: the listing catches up by full refetch rather than
// a local patch.
func (s *ViewService) refreshActive(ctx context.Context, sid string, input ports.RefreshInput) (*domain.SectionSnapshot, error) {
	if active, ok := s.ActiveSection(sid); ok {
		input.Section = active
	}
	return s.refresh(ctx, sid, input, false)
}

func (s *ViewService) refresh(ctx context.Context, sid string, input ports.RefreshInput, activate bool) (*domain.SectionSnapshot, error) {
	if !input.Section.Valid() {
		return nil, domain.ErrUnknownSection
	}
	sess, err := s.resolve(ctx, sid)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	vs, ok := s.states[sid]
	if !ok {
		vs = &viewState{sections: make(map[domain.Section]*sectionState)}
		s.states[sid] = vs
	}
	if activate {
		vs.active = input.Section
	}
	ss, ok := vs.sections[input.Section]
	if !ok {
		ss = &sectionState{}
		vs.sections[input.Section] = ss
	}
	ss.lastIssued++
	gen := ss.lastIssued
	prev := ss.snapshot
	s.mu.Unlock()

	next := s.fetch(ctx, sess, input, prev)
	next.Generation = gen
	next.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != ss.lastIssued {
		// A newer refresh was issued while this one was in flight. Last writer
		// by issue order wins, not by completion order.
		s.log.Debug().Str("sid", sid).Str("section", string(input.Section)).
			Uint64("generation", gen).Uint64("latest", ss.lastIssued).
			Msg("stale refresh discarded")
		if ss.snapshot != nil {
			return ss.snapshot, nil
		}
		return next, nil
	}
	ss.snapshot = next
	return next, nil
}

// fetch issues the single GET for the section and folds the outcome into a
// snapshot. A failed fetch keeps the previous rows so the view can keep
// showing them under a section-scoped error.
func (s *ViewService) fetch(ctx context.Context, sess *domain.Session, input ports.RefreshInput, prev *domain.SectionSnapshot) *domain.SectionSnapshot {
	next := &domain.SectionSnapshot{Section: input.Section, Phase: domain.PhaseLoaded}

	var err error
	switch input.Section {
	case domain.SectionDashboard:
		next.Stats, err = s.backend.FetchStats(ctx, sess.UpstreamCookie)
	case domain.SectionOrders:
		next.Orders, err = s.backend.ListOrders(ctx, sess.UpstreamCookie, input.Orders)
	case domain.SectionMaintenance:
		next.Maintenance, err = s.backend.ListMaintenance(ctx, sess.UpstreamCookie, input.Maintenance)
	case domain.SectionHistory:
		next.History, err = s.backend.ListHistory(ctx, sess.UpstreamCookie, input.History)
	}
	if err == nil {
		return next
	}

	s.log.Warn().Err(err).Str("section", string(input.Section)).Msg("section refresh failed")
	next.Phase = domain.PhaseFailed
	next.Error = refreshErrorMessage(err)
	if prev != nil {
		next.Stats = prev.Stats
		next.Orders = prev.Orders
		next.Maintenance = prev.Maintenance
		next.History = prev.History
	}
	return next
}

func (s *ViewService) resolve(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, domain.ErrSessionNotFound
	}
	sess, err := s.store.Find(ctx, sid)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(time.Now().UTC()) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *ViewService) record(ctx context.Context, sess *domain.Session, action domain.AuditAction, recordID int64) {
	if s.audit == nil {
		return
	}
	event := &domain.AuditEvent{
		Action:    action,
		Username:  sess.User.Username,
		Role:      sess.User.Role,
		RecordID:  recordID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", string(action)).Msg("audit record failed")
	}
}

func refreshErrorMessage(err error) string {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		if ue.Message != "" {
			return ue.Message
		}
		return fmt.Sprintf("backend returned status %d", ue.Status)
	}
	return "backend unreachable"
}
