package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// SessionService implements the login/logout lifecycle against the upstream
// backend. It never stores credentials; the backend verifies them and the
// service only keeps the resulting session.
type SessionService struct {
	backend      ports.BackendClient
	store        ports.SessionStore
	audit        ports.AuditRepository
	jwtSecret    string
	sessionTTL   time.Duration
	allowedRoles []string
	log          zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSessionService(
	backend ports.BackendClient,
	store ports.SessionStore,
	audit ports.AuditRepository,
	jwtSecret string,
	sessionTTL time.Duration,
	allowedRoles []string,
	log zerolog.Logger,
) *SessionService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	if len(allowedRoles) == 0 {
		allowedRoles = []string{domain.RoleSales, domain.RoleBackend}
	}
	return &SessionService{
		backend:      backend,
		store:        store,
		audit:        audit,
		jwtSecret:    jwtSecret,
		sessionTTL:   sessionTTL,
		allowedRoles: allowedRoles,
		log:          log,
		inFlight:     make(map[string]struct{}),
	}
}

// Probe re-validates an existing session against the backend's who-am-I
// endpoint. Every failure mode, including a transport error, resolves to
// ErrSessionNotFound so the caller falls back to the login view.
func (s *SessionService) Probe(ctx context.Context, sid string) (*domain.Session, error) {
	sess, err := s.Resolve(ctx, sid)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	user, err := s.backend.ProbeSession(ctx, sess.UpstreamCookie)
	if err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("session probe failed")
		s.teardown(ctx, sess)
		return nil, domain.ErrSessionNotFound
	}
	if !domain.RoleAllowed(user.Role, s.allowedRoles) {
		s.log.Info().Str("role", user.Role).Msg("probe returned disallowed role")
		s.teardown(ctx, sess)
		return nil, domain.ErrSessionNotFound
	}

	return sess, nil
}

// Login authenticates against the backend and establishes a portal session.
// A second login attempt for the same username while one is still in flight
// is rejected with ErrLoginInFlight.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !s.acquire(username) {
		return nil, "", domain.ErrLoginInFlight
	}
	defer s.release(username)

	user, credential, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	if !domain.RoleAllowed(user.Role, s.allowedRoles) {
		// The backend accepted the credentials but the role may not use the
		// portal. Invalidate the upstream session we just opened.
		if lerr := s.backend.Logout(ctx, credential); lerr != nil {
			s.log.Warn().Err(lerr).Msg("upstream logout after role rejection failed")
		}
		s.record(ctx, &domain.AuditEvent{
			Action:   domain.AuditLoginDenied,
			Username: user.Username,
			Role:     user.Role,
			Detail:   "role not allowed",
		})
		return nil, "", domain.ErrRoleNotAllowed
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		SID:            newSessionID(),
		User:           *user,
		UpstreamCookie: credential,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.sessionTTL),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}

	token, err := s.mintToken(sess)
	if err != nil {
		return nil, "", fmt.Errorf("mint session token: %w", err)
	}

	s.record(ctx, &domain.AuditEvent{
		Action:   domain.AuditLogin,
		Username: user.Username,
		Role:     user.Role,
	})
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("session established")

	return sess, token, nil
}

// Logout notifies the backend best-effort and then unconditionally tears the
// local session down. There is no failure mode the caller has to handle.
func (s *SessionService) Logout(ctx context.Context, sid string) {
	sess, err := s.Resolve(ctx, sid)
	if err != nil {
		return
	}
	if err := s.backend.Logout(ctx, sess.UpstreamCookie); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("upstream logout failed")
	}
	s.teardown(ctx, sess)
	s.record(ctx, &domain.AuditEvent{
		Action:   domain.AuditLogout,
		Username: sess.User.Username,
		Role:     sess.User.Role,
	})
}

// Resolve loads a live session from the store without touching the backend.
func (s *SessionService) Resolve(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, domain.ErrSessionNotFound
	}
	sess, err := s.store.Find(ctx, sid)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Warn().Err(err).Str("sid", sid).Msg("session lookup failed")
		}
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(time.Now().UTC()) {
		s.teardown(ctx, sess)
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// ParseToken validates a signed session cookie value and returns the sid.
func (s *SessionService) ParseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

func (s *SessionService) mintToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sess.SID,
		"username": sess.User.Username,
		"role":     sess.User.Role,
		"exp":      sess.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *SessionService) teardown(ctx context.Context, sess *domain.Session) {
	if err := s.store.Delete(ctx, sess.SID); err != nil {
		s.log.Warn().Err(err).Str("sid", sess.SID).Msg("session delete failed")
	}
}

// record writes an audit event. Auditing is best-effort and never fails the
// operation being audited.
func (s *SessionService) record(ctx context.Context, event *domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.CreatedAt = time.Now().UTC()
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", string(event.Action)).Msg("audit record failed")
	}
}

func (s *SessionService) acquire(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[username]; busy {
		return false
	}
	s.inFlight[username] = struct{}{}
	return true
}

func (s *SessionService) release(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, username)
}

// newSessionID returns a unique session id in the format SP-XXXXXXXXXXXXXXXX.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("SP-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("SP-%016X", b)
}
