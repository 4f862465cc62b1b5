package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// RouteClass is how the gate treats a path.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAuthenticated
	RouteGuestOnly
	RouteAdminOnly
)

// GateRules lists path prefixes per class. A path matches a prefix when it is
// equal to it or continues with "/". Guest-only is checked first, then
// admin-only, then authenticated; anything else is public.
type GateRules struct {
	GuestOnly     []string
	AdminOnly     []string
	Authenticated []string

	// APIPrefix marks paths that get status codes instead of redirects.
	APIPrefix string

	LoginPage      string
	AdminLoginPage string
	DashboardPage  string
	AdminHomePage  string
}

// DefaultGateRules is the route table served by this API and the web
// frontend sharing its origin.
func DefaultGateRules() GateRules {
	return GateRules{
		GuestOnly: []string{"/login", "/signup", "/admin/login"},
		AdminOnly: []string{"/admin", "/api/admin"},
		Authenticated: []string{
			"/dashboard",
			"/profile",
			"/model",
			"/api/auth/logout",
			"/api/auth/me",
			"/api/model",
			"/api/product-requests",
			"/api/upload",
			"/api/assets",
			"/api/users",
		},
		APIPrefix:      "/api",
		LoginPage:      "/login",
		AdminLoginPage: "/admin/login",
		DashboardPage:  "/dashboard",
		AdminHomePage:  "/admin",
	}
}

// Classify returns the class of path.
func (r GateRules) Classify(path string) RouteClass {
	switch {
	case matchAny(path, r.GuestOnly):
		return RouteGuestOnly
	case matchAny(path, r.AdminOnly):
		return RouteAdminOnly
	case matchAny(path, r.Authenticated):
		return RouteAuthenticated
	}
	return RoutePublic
}

func (r GateRules) isAPI(path string) bool {
	return r.APIPrefix != "" && hasPrefix(path, r.APIPrefix)
}

// Gate allows, redirects or rejects each request by route class. It must run
// after Session. It only reads the request.
func Gate(rules GateRules) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			claims, authed := ClaimsFrom(c)

			switch rules.Classify(path) {
			case RouteGuestOnly:
				if authed {
					target := rules.DashboardPage
					if claims.IsAdmin() {
						target = rules.AdminHomePage
					}
					return c.Redirect(http.StatusFound, target)
				}

			case RouteAdminOnly:
				if !authed || !claims.IsAdmin() {
					if rules.isAPI(path) {
						return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
					}
					return c.Redirect(http.StatusFound, rules.AdminLoginPage)
				}

			case RouteAuthenticated:
				if !authed {
					if rules.isAPI(path) {
						return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
					}
					return c.Redirect(http.StatusFound, rules.LoginPage+"?redirect="+url.QueryEscape(c.Request().URL.RequestURI()))
				}
			}

			return next(c)
		}
	}
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}

func hasPrefix(path, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
