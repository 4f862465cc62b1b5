package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/api/middleware"
	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn      func(ctx context.Context, in ports.SignupInput) (*ports.Session, error)
	loginFn       func(ctx context.Context, email, password string) (*ports.Session, error)
	adminSignupFn func(ctx context.Context, username, password, confirm string) (*ports.Session, error)
	adminLoginFn  func(ctx context.Context, username, password string) (*ports.Session, error)
	meFn          func(ctx context.Context, claims domain.SessionClaims) (*domain.Account, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.Session, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) AdminSignup(ctx context.Context, username, password, confirm string) (*ports.Session, error) {
	return s.adminSignupFn(ctx, username, password, confirm)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, username, password string) (*ports.Session, error) {
	return s.adminLoginFn(ctx, username, password)
}

func (s *stubAuthService) Me(ctx context.Context, claims domain.SessionClaims) (*domain.Account, error) {
	return s.meFn(ctx, claims)
}

type stubOnboardingService struct {
	submitFn func(ctx context.Context, in ports.OnboardingInput) (*domain.ModelOnboardingRequest, error)
	createFn func(ctx context.Context, in ports.CreateModelInput, adminID string) (*domain.ModelOnboardingRequest, error)
	decideFn func(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ModelOnboardingRequest, error)
	listFn   func(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ModelOnboardingRequest], error)
}

func (s *stubOnboardingService) Submit(ctx context.Context, in ports.OnboardingInput) (*domain.ModelOnboardingRequest, error) {
	return s.submitFn(ctx, in)
}

func (s *stubOnboardingService) CreateApproved(ctx context.Context, in ports.CreateModelInput, adminID string) (*domain.ModelOnboardingRequest, error) {
	return s.createFn(ctx, in, adminID)
}

func (s *stubOnboardingService) Decide(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ModelOnboardingRequest, error) {
	return s.decideFn(ctx, id, action, adminID, notes)
}

func (s *stubOnboardingService) Get(ctx context.Context, id string) (*domain.ModelOnboardingRequest, error) {
	return nil, domain.ErrRequestNotFound
}

func (s *stubOnboardingService) List(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ModelOnboardingRequest], error) {
	return s.listFn(ctx, filter)
}

type stubProductService struct {
	submitFn   func(ctx context.Context, owner domain.SessionClaims, in ports.ProductInput) (*domain.ProductListingRequest, error)
	decideFn   func(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ProductListingRequest, error)
	completeFn func(ctx context.Context, id, adminID string) (*domain.ProductListingRequest, error)
	assignFn   func(ctx context.Context, id string, modelRef *string, shoot *domain.ShootDetails, adminID string) (*domain.ProductListingRequest, error)
	getFn      func(ctx context.Context, id string) (*domain.ProductListingRequest, error)
	listFn     func(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ProductListingRequest], error)
}

func (s *stubProductService) Submit(ctx context.Context, owner domain.SessionClaims, in ports.ProductInput) (*domain.ProductListingRequest, error) {
	return s.submitFn(ctx, owner, in)
}

func (s *stubProductService) Decide(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ProductListingRequest, error) {
	return s.decideFn(ctx, id, action, adminID, notes)
}

func (s *stubProductService) Complete(ctx context.Context, id, adminID string) (*domain.ProductListingRequest, error) {
	return s.completeFn(ctx, id, adminID)
}

func (s *stubProductService) AssignModel(ctx context.Context, id string, modelRef *string, shoot *domain.ShootDetails, adminID string) (*domain.ProductListingRequest, error) {
	return s.assignFn(ctx, id, modelRef, shoot, adminID)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.ProductListingRequest, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) List(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ProductListingRequest], error) {
	return s.listFn(ctx, filter)
}

type stubAssetService struct {
	uploadFn func(ctx context.Context, in ports.UploadInput) (*domain.AssetRef, error)
	listFn   func(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error)
}

func (s *stubAssetService) Upload(ctx context.Context, in ports.UploadInput) (*domain.AssetRef, error) {
	return s.uploadFn(ctx, in)
}

func (s *stubAssetService) RecordAsset(ctx context.Context, ownerID string, purpose domain.AssetPurpose, url string, meta ports.AssetMeta) (*domain.AssetRef, error) {
	return &domain.AssetRef{OwnerID: ownerID, Purpose: purpose, URL: url}, nil
}

func (s *stubAssetService) ListAssets(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error) {
	return s.listFn(ctx, ownerID, purpose)
}

type stubAccountService struct {
	getFn    func(ctx context.Context, actor domain.SessionClaims, id string) (*domain.Account, error)
	updateFn func(ctx context.Context, actor domain.SessionClaims, id string, in ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, actor domain.SessionClaims, id string) error
}

func (s *stubAccountService) Get(ctx context.Context, actor domain.SessionClaims, id string) (*domain.Account, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubAccountService) Update(ctx context.Context, actor domain.SessionClaims, id string, in ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubAccountService) Delete(ctx context.Context, actor domain.SessionClaims, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubDashboardService struct {
	fn func(ctx context.Context, claims domain.SessionClaims) (*ports.ModelDashboard, error)
}

func (s *stubDashboardService) ModelDashboard(ctx context.Context, claims domain.SessionClaims) (*ports.ModelDashboard, error) {
	return s.fn(ctx, claims)
}

var (
	clientSession = domain.SessionClaims{AccountID: "client-1", Email: "c@example.com", Role: domain.KindClient}
	modelSession  = domain.SessionClaims{AccountID: "model-1", Email: "m@example.com", Role: domain.KindModel}
	adminSession  = domain.SessionClaims{AccountID: "admin-1", Email: "admin", Role: domain.KindAdmin}
)

// newContext builds an echo context with the validator installed and, when
// claims is non-nil, an authenticated session.
func newContext(method, target string, body io.Reader, contentType string, claims *domain.SessionClaims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		middleware.SetClaims(c, *claims)
	}
	return c, rec
}

func jsonContext(method, target, body string, claims *domain.SessionClaims) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, strings.NewReader(body), echo.MIMEApplicationJSON, claims)
}

func testSession(kind domain.AccountKind) *ports.Session {
	return &ports.Session{
		Token:     "signed-token",
		ExpiresAt: time.Now().Add(time.Hour),
		Account:   &domain.Account{ID: "acc-1", Email: "user@example.com", Kind: kind, Status: domain.AccountActive},
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	return nil
}
