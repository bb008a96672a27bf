package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/issuetracker/issues-service/internal/api/middleware"
	"github.com/issuetracker/issues-service/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fails fast before any service call when subject or email is missing.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, _ := c.Get(middleware.PrincipalKey).(domain.Principal)
	if p.Subject == "" || p.Email == "" {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}
