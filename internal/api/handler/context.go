package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/api/middleware"
	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

// ctxClaims returns the verified session of the caller. Routes behind the
// gate always have one; the check keeps handlers safe when mounted elsewhere.
func ctxClaims(c echo.Context) (domain.SessionClaims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.SessionClaims{}, domain.ErrUnauthenticated
	}
	return claims, nil
}

// CookieOptions controls the session cookie attributes.
type CookieOptions struct {
	Secure bool
	Domain string
}

func setSessionCookie(c echo.Context, opts CookieOptions, s *ports.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Domain:   opts.Domain,
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Domain:   opts.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// listFilter reads the shared list query parameters.
func listFilter(c echo.Context) domain.ListFilter {
	search := c.QueryParam("search")
	if search == "" {
		search = c.QueryParam("q")
	}
	return domain.ListFilter{
		Status:    domain.RequestStatus(strings.ToLower(strings.TrimSpace(c.QueryParam("status")))),
		Search:    strings.TrimSpace(search),
		Page:      atoi(c.QueryParam("page")),
		PageSize:  atoi(c.QueryParam("pageSize")),
		SortField: c.QueryParam("sortField"),
		SortOrder: strings.ToLower(c.QueryParam("sortOrder")),
	}
}

func checkStatusFilter(status domain.RequestStatus, kind domain.RequestKind) error {
	if status != "" && !status.Valid(kind) {
		return domain.NewValidationError("status", "unknown status "+string(status))
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// bindAndValidate binds the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
