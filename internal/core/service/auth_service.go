package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/pkg/metrics"
)

// AuthOptions configures session lifetimes and the admin signup switch.
type AuthOptions struct {
	SessionTTL       time.Duration
	AdminSessionTTL  time.Duration
	AllowAdminSignup bool
}

// AuthService implements signup, login and the admin variants.
type AuthService struct {
	creds  *CredentialStore
	repo   ports.AccountRepository
	tokens ports.TokenIssuer
	opts   AuthOptions
	log    zerolog.Logger
}

func NewAuthService(creds *CredentialStore, repo ports.AccountRepository, tokens ports.TokenIssuer, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	if opts.AdminSessionTTL <= 0 {
		opts.AdminSessionTTL = 24 * time.Hour
	}
	return &AuthService{creds: creds, repo: repo, tokens: tokens, opts: opts, log: log}
}

// Signup registers a client account and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.Session, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, domain.NewValidationError("full_name", "full name is required")
	}

	account, err := s.creds.CreateAccount(ctx, NewAccount{
		Email:       in.Email,
		DisplayName: strings.TrimSpace(in.FullName),
		Kind:        domain.KindClient,
		Status:      domain.AccountActive,
		Profile: domain.Profile{
			CompanyName: strings.TrimSpace(in.CompanyName),
			Industry:    strings.TrimSpace(in.Industry),
		},
	}, in.Password)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("client signed up")
	return s.issue(account, s.opts.SessionTTL)
}

// Login authenticates any account kind. Unknown email and wrong password both
// wrap domain.ErrInvalidCredentials so the boundary cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	account, err := s.authenticate(ctx, "user", email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(account, s.ttlFor(account.Kind))
}

// AdminSignup creates an admin account when the deployment allows it.
func (s *AuthService) AdminSignup(ctx context.Context, username, password, confirmPassword string) (*ports.Session, error) {
	if !s.opts.AllowAdminSignup {
		return nil, domain.ErrForbidden
	}
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, domain.NewValidationError("username", "username must be at least 3 characters")
	}
	if password != confirmPassword {
		return nil, domain.NewValidationError("confirm_password", "passwords do not match")
	}

	account, err := s.creds.CreateAccount(ctx, NewAccount{
		Email:       username,
		DisplayName: username,
		Kind:        domain.KindAdmin,
		Status:      domain.AccountActive,
	}, password)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID).Msg("admin signed up")
	return s.issue(account, s.opts.AdminSessionTTL)
}

// AdminLogin is Login restricted to admin accounts, with the short admin TTL.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*ports.Session, error) {
	account, err := s.authenticate(ctx, "admin", username, password)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() {
		metrics.LoginAttemptsTotal.WithLabelValues("admin", "invalid_credentials").Inc()
		return nil, domain.ErrNoSuchAccount
	}
	return s.issue(account, s.opts.AdminSessionTTL)
}

// Me resolves the account behind a verified session.
func (s *AuthService) Me(ctx context.Context, claims domain.SessionClaims) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}
	return account, nil
}

func (s *AuthService) authenticate(ctx context.Context, flow, email, password string) (*domain.Account, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.NewValidationError("", "email and password are required")
	}

	account, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.creds.RejectUnknown(password)
			metrics.LoginAttemptsTotal.WithLabelValues(flow, "invalid_credentials").Inc()
			return nil, domain.ErrNoSuchAccount
		}
		metrics.LoginAttemptsTotal.WithLabelValues(flow, "error").Inc()
		return nil, err
	}

	if !s.creds.VerifyPassword(account, password) {
		metrics.LoginAttemptsTotal.WithLabelValues(flow, "invalid_credentials").Inc()
		return nil, domain.ErrInvalidPassword
	}

	if err := account.CheckActive(); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(flow, "not_active").Inc()
		s.log.Info().Str("account_id", account.ID).Str("status", string(account.Status)).Msg("login refused for inactive account")
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(flow, "success").Inc()
	return account, nil
}

func (s *AuthService) ttlFor(kind domain.AccountKind) time.Duration {
	if kind == domain.KindAdmin {
		return s.opts.AdminSessionTTL
	}
	return s.opts.SessionTTL
}

func (s *AuthService) issue(account *domain.Account, ttl time.Duration) (*ports.Session, error) {
	token, exp, err := s.tokens.Issue(account, ttl)
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, ExpiresAt: exp, Account: account}, nil
}
