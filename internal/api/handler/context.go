package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/middleware"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// ctxSession extracts the session injected by the SessionAuth middleware.
// Its presence proves the middleware ran; handlers behind it can rely on it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get("session").(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

func setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
