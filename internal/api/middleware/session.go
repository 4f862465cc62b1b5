package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

// SessionCookie is the cookie that carries the session token for browsers.
const SessionCookie = "session"

const claimsKey = "session_claims"

// Session verifies the session token, if any, and stores its claims in the
// context. It never rejects a request: an absent or invalid token simply
// leaves the request unauthenticated for Gate and the handlers to judge.
func Session(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := tokenFrom(c); raw != "" {
				if claims, err := tokens.Verify(raw); err == nil {
					SetClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}

// tokenFrom prefers the Authorization header over the cookie.
func tokenFrom(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return ""
}

// SetClaims attaches verified claims to the request context.
func SetClaims(c echo.Context, claims domain.SessionClaims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims set by Session, if the caller is authenticated.
func ClaimsFrom(c echo.Context) (domain.SessionClaims, bool) {
	claims, ok := c.Get(claimsKey).(domain.SessionClaims)
	if !ok || claims.AccountID == "" {
		return domain.SessionClaims{}, false
	}
	return claims, true
}
