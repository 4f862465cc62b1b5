package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// RequireRole lets through sessions whose role is one of roles. An
// unauthenticated caller gets ErrUnauthenticated, any other role ErrForbidden.
func RequireRole(roles ...domain.AccountKind) echo.MiddlewareFunc {
	allowed := make(map[domain.AccountKind]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[claims.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
