package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/domain"
)

type stubTokens struct {
	valid map[string]domain.SessionClaims
	seen  []string
}

func (s *stubTokens) Issue(account *domain.Account, ttl time.Duration) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s *stubTokens) Verify(token string) (domain.SessionClaims, error) {
	s.seen = append(s.seen, token)
	claims, ok := s.valid[token]
	if !ok {
		return domain.SessionClaims{}, domain.ErrInvalidSession
	}
	return claims, nil
}

func newStubTokens() *stubTokens {
	return &stubTokens{valid: map[string]domain.SessionClaims{
		"client-token": {AccountID: "c1", Email: "c@example.com", Role: domain.KindClient},
		"admin-token":  {AccountID: "a1", Email: "a@example.com", Role: domain.KindAdmin},
	}}
}

func runSession(t *testing.T, tokens *stubTokens, req *http.Request) (domain.SessionClaims, bool) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	var (
		claims domain.SessionClaims
		ok     bool
	)
	err := Session(tokens)(func(c echo.Context) error {
		claims, ok = ClaimsFrom(c)
		return nil
	})(c)
	if err != nil {
		t.Fatalf("session middleware returned %v", err)
	}
	return claims, ok
}

func TestSession_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer client-token")

	claims, ok := runSession(t, newStubTokens(), req)
	if !ok || claims.AccountID != "c1" || claims.Role != domain.KindClient {
		t.Fatalf("unexpected claims %+v (ok=%v)", claims, ok)
	}
}

func TestSession_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "admin-token"})

	claims, ok := runSession(t, newStubTokens(), req)
	if !ok || !claims.IsAdmin() {
		t.Fatalf("expected admin claims, got %+v (ok=%v)", claims, ok)
	}
}

func TestSession_HeaderWinsOverCookie(t *testing.T) {
	tokens := newStubTokens()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer client-token")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "admin-token"})

	claims, _ := runSession(t, tokens, req)
	if claims.Role != domain.KindClient {
		t.Fatalf("expected header token to win, got %+v", claims)
	}
	if len(tokens.seen) != 1 {
		t.Fatalf("expected a single verify call, got %v", tokens.seen)
	}
}

func TestSession_InvalidTokenLeavesRequestAnonymous(t *testing.T) {
	cases := map[string]func(r *http.Request){
		"unknown token":    func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer forged") },
		"wrong scheme":     func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Basic client-token") },
		"no credentials":   func(r *http.Request) {},
		"bad cookie value": func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired"}) },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			setup(req)
			if _, ok := runSession(t, newStubTokens(), req); ok {
				t.Fatalf("expected no claims")
			}
		})
	}
}
