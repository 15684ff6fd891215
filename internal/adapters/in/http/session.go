package http

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName holds the opaque session id. Role and code stay server-side.
	SessionCookieName = "order_desk_session"

	principalKey = "principal"
)

// SessionAuthenticator resolves a session id to the actor behind it.
type SessionAuthenticator interface {
	Handle(ctx context.Context, cmd commands.AuthenticateSessionCommand) (commands.Principal, error)
}

// requireSession rejects requests without a live binding for one of roles.
// The resolved principal is stored in the echo context.
func requireSession(auth SessionAuthenticator, roles ...actor.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return commands.ErrUnauthorized
			}

			cmd, err := commands.NewAuthenticateSessionCommand(cookie.Value)
			if err != nil {
				return err
			}

			principal, err := auth.Handle(c.Request().Context(), cmd)
			if err != nil {
				if errors.Is(err, commands.ErrUnauthorized) {
					clearSessionCookie(c)
				}
				return err
			}

			if !slices.Contains(roles, principal.Role) {
				return commands.ErrUnauthorized
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (commands.Principal, bool) {
	p, ok := c.Get(principalKey).(commands.Principal)
	return p, ok
}

type cookieSettings struct {
	secure bool
}

func (s cookieSettings) set(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
