package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "portal_session"

// SessionAuth validates the session cookie and injects the resolved session
// into context. Browser requests without a live session are redirected to the
// login screen rather than answered with a bare 401.
func SessionAuth(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c)
			}

			sid, err := sessions.ParseToken(cookie.Value)
			if err != nil {
				return redirectToLogin(c)
			}

			sess, err := sessions.Resolve(c.Request().Context(), sid)
			if err != nil {
				return redirectToLogin(c)
			}

			c.Set("sid", sess.SID)
			c.Set("session", sess)
			c.Set("username", sess.User.Username)
			c.Set("role", sess.User.Role)

			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}
