package ports

import (
	"context"
	"time"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// SignupInput is the client self-registration payload.
type SignupInput struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
	Industry    string
}

// Session is a freshly issued session artifact and the account it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// AuthService covers the credential store and the session issuer.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	AdminSignup(ctx context.Context, username, password, confirmPassword string) (*Session, error)
	AdminLogin(ctx context.Context, username, password string) (*Session, error)
	Me(ctx context.Context, claims domain.SessionClaims) (*domain.Account, error)
}

// TokenIssuer signs and verifies stateless session artifacts.
type TokenIssuer interface {
	Issue(account *domain.Account, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (domain.SessionClaims, error)
}
