package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/metrics"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/middleware"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/view"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// AuthHandler serves the login screen and the session lifecycle endpoints.
type AuthHandler struct {
	sessions ports.SessionService
	views    ports.ViewService
}

func NewAuthHandler(sessions ports.SessionService, views ports.ViewService) *AuthHandler {
	return &AuthHandler{sessions: sessions, views: views}
}

// Root probes for an existing session. A live one lands on its last active
// section; anything else falls back to the login screen.
func (h *AuthHandler) Root(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.Render(http.StatusOK, "login", view.LoginPage{})
	}

	sid, err := h.sessions.ParseToken(cookie.Value)
	if err == nil {
		if sess, perr := h.sessions.Probe(c.Request().Context(), sid); perr == nil {
			section := domain.SectionDashboard
			if active, ok := h.views.ActiveSection(sess.SID); ok {
				section = active
			}
			return c.Redirect(http.StatusSeeOther, "/portal/"+string(section))
		}
	}

	clearSessionCookie(c)
	return c.Render(http.StatusOK, "login", view.LoginPage{})
}

// Login authenticates the submitted credentials and establishes the session
// cookie. Failures re-render the login screen with a message instead of
// surfacing an error page.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login", view.LoginPage{Error: "Invalid username or password"})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login", view.LoginPage{Error: "Invalid username or password"})
	}

	sess, token, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		status, msg := loginFailure(err)
		return c.Render(status, "login", view.LoginPage{Error: msg})
	}

	metrics.SessionsEstablishedTotal.Inc()
	setSessionCookie(c, token, sess.ExpiresAt)

	return c.Redirect(http.StatusSeeOther, "/portal/"+string(domain.SectionDashboard))
}

// Logout tears the session down and returns the browser to the login screen.
// It sits behind SessionAuth, so a session is guaranteed to be present.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	h.sessions.Logout(c.Request().Context(), sess.SID)
	h.views.DropSession(sess.SID)
	clearSessionCookie(c)

	return c.Redirect(http.StatusSeeOther, "/")
}

func loginFailure(err error) (int, string) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domain.ErrRoleNotAllowed):
		return http.StatusForbidden, "This account is not allowed to use the sales portal"
	case errors.Is(err, domain.ErrLoginInFlight):
		return http.StatusConflict, "A login for this user is already in progress"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway, "Cannot reach the server. Please try again."
	case errors.As(err, &upstream):
		return upstream.Status, upstream.Message
	}
	return http.StatusInternalServerError, "Login failed. Please try again."
}
