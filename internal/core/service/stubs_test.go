package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Account
	seq       int
	updateErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	clone := *a
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("acc-%d", r.seq)
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, u ports.AccountUpdate) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if u.DisplayName != nil {
		a.DisplayName = *u.DisplayName
	}
	if u.Profile != nil {
		a.Profile = *u.Profile
	}
	if u.AvatarURL != nil {
		a.AvatarURL = *u.AvatarURL
	}
	if u.PasswordHash != nil {
		a.PasswordHash = *u.PasswordHash
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type stubOnboardingRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.ModelOnboardingRequest
	seq       int
	createErr error
	// beforeApply runs inside ApplyDecision before the status check, to
	// simulate a concurrent writer.
	beforeApply func(r *domain.ModelOnboardingRequest)
}

func newStubOnboardingRepo() *stubOnboardingRepo {
	return &stubOnboardingRepo{byID: make(map[string]*domain.ModelOnboardingRequest)}
}

func (r *stubOnboardingRepo) Create(_ context.Context, req *domain.ModelOnboardingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if req.ID == "" {
		r.seq++
		req.ID = fmt.Sprintf("onb-%d", r.seq)
	}
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *stubOnboardingRepo) FindByID(_ context.Context, id string) (*domain.ModelOnboardingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubOnboardingRepo) FindByAccountID(_ context.Context, accountID string) (*domain.ModelOnboardingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.byID {
		if req.AccountID == accountID {
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubOnboardingRepo) List(_ context.Context, f domain.ListFilter) ([]domain.ModelOnboardingRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.ModelOnboardingRequest
	for _, req := range r.byID {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, req.Applicant.FullName, req.Applicant.Email) {
			continue
		}
		matched = append(matched, *req)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f), int64(len(matched)), nil
}

func (r *stubOnboardingRepo) ApplyDecision(_ context.Context, id string, d domain.Decision) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if r.beforeApply != nil {
		r.beforeApply(req)
	}
	if req.Status != d.From {
		return false, nil
	}
	at := d.At
	req.Status = d.To
	req.DecidedBy = d.DecidedBy
	req.DecidedAt = &at
	req.UpdatedAt = d.At
	if d.AdminNotes != "" {
		req.AdminNotes = d.AdminNotes
	}
	return true, nil
}

type stubProductRepo struct {
	mu         sync.Mutex
	byID       map[string]*domain.ProductListingRequest
	seq        int
	lastFilter domain.ListFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.ProductListingRequest)}
}

func (r *stubProductRepo) Create(_ context.Context, req *domain.ProductListingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		r.seq++
		req.ID = fmt.Sprintf("prd-%d", r.seq)
	}
	clone := *req
	r.byID[req.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.ProductListingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context, f domain.ListFilter) ([]domain.ProductListingRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	var matched []domain.ProductListingRequest
	for _, req := range r.byID {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.Status == "" && len(f.Statuses) > 0 && !statusIn(req.Status, f.Statuses) {
			continue
		}
		if f.OwnerID != "" && req.OwnerAccountID != f.OwnerID {
			continue
		}
		if f.ModelRef != "" && (req.AssignedModelRef == nil || *req.AssignedModelRef != f.ModelRef) {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, req.OwnerName, req.OwnerEmail, req.Product.Name) {
			continue
		}
		matched = append(matched, *req)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, f), int64(len(matched)), nil
}

func (r *stubProductRepo) ApplyDecision(_ context.Context, id string, d domain.Decision) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok || req.Status != d.From {
		return false, nil
	}
	req.Status = d.To
	req.UpdatedAt = d.At
	if d.AdminNotes != "" {
		req.AdminNotes = d.AdminNotes
	}
	if d.CompletedAt != nil {
		req.CompletedAt = d.CompletedAt
	} else {
		at := d.At
		req.DecidedBy = d.DecidedBy
		req.DecidedAt = &at
	}
	return true, nil
}

func (r *stubProductRepo) Assign(_ context.Context, id string, a domain.Assignment, allowed []domain.RequestStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok || !statusIn(req.Status, allowed) {
		return false, nil
	}
	req.AssignedModelRef = a.ModelRef
	req.ShootDetails = a.ShootDetails
	req.UpdatedAt = a.At
	return true, nil
}

type stubAssetRepo struct {
	mu     sync.Mutex
	assets []domain.AssetRef
}

func (r *stubAssetRepo) Insert(_ context.Context, a *domain.AssetRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = fmt.Sprintf("ast-%d", len(r.assets)+1)
	}
	r.assets = append(r.assets, *a)
	return nil
}

func (r *stubAssetRepo) ListByOwner(_ context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AssetRef
	for _, a := range r.assets {
		if a.OwnerID == ownerID && (purpose == "" || a.Purpose == purpose) {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubActivityRepo struct {
	mu        sync.Mutex
	entries   []domain.Activity
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, *a)
	return nil
}

func (r *stubActivityRepo) ListByAccount(_ context.Context, accountID string, limit int) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Activity
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].AccountID == accountID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// stubGuard mimics the Redis guard: a reserved key without a committed id is
// in flight.
type stubGuard struct {
	mu   sync.Mutex
	keys map[string]string
}

func newStubGuard() *stubGuard { return &stubGuard{keys: make(map[string]string)} }

func (g *stubGuard) Reserve(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id, ok := g.keys[key]; ok {
		return id, false, nil
	}
	g.keys[key] = ""
	return "", true, nil
}

func (g *stubGuard) Commit(_ context.Context, key, requestID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.keys[key] = requestID
	return nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}

type stubStorage struct {
	objects map[string][]byte
	putErr  error
}

func newStubStorage() *stubStorage { return &stubStorage{objects: make(map[string][]byte)} }

func (s *stubStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[key] = b
	return "https://cdn.example.test/" + key, nil
}

func (s *stubStorage) Ping(context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errStubDown = errors.New("stub: dependency down")

func containsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, f domain.ListFilter) []T {
	start := int(f.Skip())
	if start >= len(items) {
		return nil
	}
	end := start + f.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func newTestCredentialStore(repo ports.AccountRepository) *CredentialStore {
	c := NewCredentialStore(repo)
	c.cost = bcrypt.MinCost
	return c
}

// fixture wires every service against shared in-memory stubs.
type fixture struct {
	accounts   *stubAccountRepo
	onboarding *stubOnboardingRepo
	products   *stubProductRepo
	assets     *stubAssetRepo
	activities *stubActivityRepo
	guard      *stubGuard
	storage    *stubStorage

	creds     *CredentialStore
	auth      *AuthService
	onboard   *OnboardingService
	product   *ProductService
	asset     *AssetService
	account   *AccountService
	dashboard *DashboardService
	tokens    *JWTIssuer
}

func newFixture() *fixture {
	log := zerolog.Nop()
	f := &fixture{
		accounts:   newStubAccountRepo(),
		onboarding: newStubOnboardingRepo(),
		products:   newStubProductRepo(),
		assets:     &stubAssetRepo{},
		activities: &stubActivityRepo{},
		guard:      newStubGuard(),
		storage:    newStubStorage(),
		tokens:     NewJWTIssuer("test-secret"),
	}
	f.creds = newTestCredentialStore(f.accounts)
	f.auth = NewAuthService(f.creds, f.accounts, f.tokens, AuthOptions{}, log)
	f.onboard = NewOnboardingService(f.creds, f.accounts, f.onboarding, f.activities, f.guard, "US", log)
	f.product = NewProductService(f.accounts, f.products, f.activities, f.guard, log)
	f.asset = NewAssetService(f.storage, f.assets, f.accounts, 1<<20, log)
	f.account = NewAccountService(f.creds, f.accounts, "US", log)
	f.dashboard = NewDashboardService(f.accounts, f.onboarding, f.products, f.activities)
	return f
}

func (f *fixture) mustClient(email string) domain.SessionClaims {
	acc, err := f.creds.CreateAccount(context.Background(), NewAccount{
		Email: email, DisplayName: "Client " + email, Kind: domain.KindClient,
	}, "client-pass")
	if err != nil {
		panic(err)
	}
	return domain.SessionClaims{AccountID: acc.ID, Email: acc.Email, Role: domain.KindClient}
}

func (f *fixture) mustAdmin() domain.SessionClaims {
	acc, err := f.creds.CreateAccount(context.Background(), NewAccount{
		Email: "root", DisplayName: "root", Kind: domain.KindAdmin,
	}, "admin-pass")
	if err != nil {
		panic(err)
	}
	return domain.SessionClaims{AccountID: acc.ID, Email: acc.Email, Role: domain.KindAdmin}
}
