package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/pkg/metrics"
)

// OnboardingService runs model applications: submission creates a pending
// model account, and the admin decision activates or deactivates it.
type OnboardingService struct {
	creds       *CredentialStore
	accounts    ports.AccountRepository
	repo        ports.OnboardingRepository
	idem        idempotency
	activity    activityLog
	phoneRegion string
	logger      zerolog.Logger
}

func NewOnboardingService(
	creds *CredentialStore,
	accounts ports.AccountRepository,
	repo ports.OnboardingRepository,
	activities ports.ActivityRepository,
	guard ports.IdempotencyGuard,
	phoneRegion string,
	logger zerolog.Logger,
) *OnboardingService {
	return &OnboardingService{
		creds:       creds,
		accounts:    accounts,
		repo:        repo,
		idem:        idempotency{guard: guard, kind: domain.KindOnboarding, log: logger},
		activity:    activityLog{repo: activities, log: logger},
		phoneRegion: phoneRegion,
		logger:      logger,
	}
}

// Submit registers an applicant. A replayed Idempotency-Key returns the
// request created by the first call.
func (s *OnboardingService) Submit(ctx context.Context, in ports.OnboardingInput) (*domain.ModelOnboardingRequest, error) {
	applicant, err := s.cleanApplicant(in.Applicant)
	if err != nil {
		return nil, err
	}

	existingID, reserved, err := s.idem.reserve(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		return s.repo.FindByID(ctx, existingID)
	}

	req, err := s.create(ctx, applicant, in.Password, in.PortfolioAssetRefs, domain.AccountPending, nil)
	if err != nil {
		if reserved {
			s.idem.release(ctx, in.IdempotencyKey)
		}
		return nil, err
	}
	if reserved {
		s.idem.commit(ctx, in.IdempotencyKey, req.ID)
	}

	s.activity.record(ctx, domain.Activity{
		AccountID:   req.AccountID,
		RequestID:   req.ID,
		RequestKind: domain.KindOnboarding,
		Action:      domain.ActionSubmit,
		Message:     "application submitted",
		ActorID:     req.AccountID,
	})
	s.logger.Info().Str("request_id", req.ID).Str("account_id", req.AccountID).Msg("onboarding request submitted")
	return req, nil
}

// CreateApproved lets an admin add a model directly: the account is active
// and the request is recorded as already approved by adminID.
func (s *OnboardingService) CreateApproved(ctx context.Context, in ports.CreateModelInput, adminID string) (*domain.ModelOnboardingRequest, error) {
	applicant, err := s.cleanApplicant(in.Applicant)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	decision := &domain.Decision{
		From:       domain.StatusPending,
		To:         domain.StatusApproved,
		DecidedBy:  adminID,
		AdminNotes: strings.TrimSpace(in.AdminNotes),
		At:         now,
	}
	req, err := s.create(ctx, applicant, in.Password, in.PortfolioAssetRefs, domain.AccountActive, decision)
	if err != nil {
		return nil, err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(string(domain.KindOnboarding), string(domain.StatusApproved)).Inc()
	s.activity.record(ctx, domain.Activity{
		AccountID:   req.AccountID,
		RequestID:   req.ID,
		RequestKind: domain.KindOnboarding,
		Action:      domain.ActionApprove,
		Message:     "model added by an administrator",
		ActorID:     adminID,
	})
	s.logger.Info().Str("request_id", req.ID).Str("admin_id", adminID).Msg("model created by admin")
	return req, nil
}

// Decide approves or rejects a pending application.
func (s *OnboardingService) Decide(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ModelOnboardingRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from, to, err := decisionFor(action, req.Status, domain.KindOnboarding)
	if err != nil {
		return nil, err
	}

	d := domain.Decision{
		From:       from,
		To:         to,
		DecidedBy:  adminID,
		AdminNotes: strings.TrimSpace(notes),
		At:         time.Now().UTC(),
	}
	ok, err := s.repo.ApplyDecision(ctx, id, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, rerr := s.repo.FindByID(ctx, id)
		status := domain.RequestStatus("")
		if current != nil {
			status = current.Status
		}
		return nil, lostRace(domain.KindOnboarding, action, status, []domain.RequestStatus{from}, rerr)
	}

	applyDecisionToOnboarding(req, d)
	metrics.RequestTransitionsTotal.WithLabelValues(string(domain.KindOnboarding), string(to)).Inc()

	accountStatus := domain.AccountActive
	if to == domain.StatusRejected {
		accountStatus = domain.AccountInactive
	}
	if _, err := s.accounts.Update(ctx, req.AccountID, ports.AccountUpdate{Status: &accountStatus}); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error().Err(err).Str("request_id", id).Str("account_id", req.AccountID).Msg("request decided but account status not updated")
			return nil, fmt.Errorf("update account status: %w", err)
		}
		// The applicant deleted the account; the decision still stands.
		s.logger.Warn().Str("request_id", id).Str("account_id", req.AccountID).Msg("request decided for a deleted account")
		s.logger.Info().Str("request_id", id).Str("status", string(to)).Str("admin_id", adminID).Msg("onboarding request decided")
		return req, nil
	}

	s.activity.record(ctx, domain.Activity{
		AccountID:   req.AccountID,
		RequestID:   req.ID,
		RequestKind: domain.KindOnboarding,
		Action:      action,
		Message:     "application " + string(to),
		ActorID:     adminID,
	})
	s.logger.Info().Str("request_id", id).Str("status", string(to)).Str("admin_id", adminID).Msg("onboarding request decided")
	return req, nil
}

func (s *OnboardingService) Get(ctx context.Context, id string) (*domain.ModelOnboardingRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of applications matching filter.
func (s *OnboardingService) List(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ModelOnboardingRequest], error) {
	filter.Normalize()
	if filter.Status != "" && !filter.Status.Valid(domain.KindOnboarding) {
		return domain.Page[domain.ModelOnboardingRequest]{}, domain.NewValidationError("status", "unknown status "+string(filter.Status))
	}
	filter.OwnerID, filter.ModelRef, filter.Statuses = "", "", nil

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.ModelOnboardingRequest]{}, err
	}
	return domain.NewPage(items, total, filter), nil
}

func (s *OnboardingService) cleanApplicant(a domain.ApplicantProfile) (domain.ApplicantProfile, error) {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = domain.NormalizeEmail(a.Email)
	a.Location = strings.TrimSpace(a.Location)
	a.Instagram = strings.TrimPrefix(strings.TrimSpace(a.Instagram), "@")

	if a.FullName == "" {
		return a, domain.NewValidationError("full_name", "full name is required")
	}
	if a.Email == "" {
		return a, domain.NewValidationError("email", "email is required")
	}
	for field, v := range map[string]int{"height_cm": a.HeightCm, "bust_cm": a.BustCm, "waist_cm": a.WaistCm, "hips_cm": a.HipsCm} {
		if v < 0 || v > 300 {
			return a, domain.NewValidationError(field, "must be between 0 and 300")
		}
	}

	phone, err := normalizePhone(a.Phone, s.phoneRegion)
	if err != nil {
		return a, err
	}
	a.Phone = phone
	return a, nil
}

// create writes the model account and its request. If the request insert
// fails the account is removed again so the email can be reused.
func (s *OnboardingService) create(
	ctx context.Context,
	applicant domain.ApplicantProfile,
	password string,
	portfolio []string,
	accountStatus domain.AccountStatus,
	decision *domain.Decision,
) (*domain.ModelOnboardingRequest, error) {
	account, err := s.creds.CreateAccount(ctx, NewAccount{
		Email:       applicant.Email,
		DisplayName: applicant.FullName,
		Kind:        domain.KindModel,
		Status:      accountStatus,
		Profile:     domain.Profile{Phone: applicant.Phone},
	}, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &domain.ModelOnboardingRequest{
		AccountID:          account.ID,
		Applicant:          applicant,
		PortfolioAssetRefs: nonNil(portfolio),
		Status:             domain.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if decision != nil {
		applyDecisionToOnboarding(req, *decision)
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error().Err(err).Str("account_id", account.ID).Msg("failed to create onboarding request")
		if derr := s.accounts.Delete(ctx, account.ID); derr != nil && !errors.Is(derr, domain.ErrNotFound) {
			s.logger.Error().Err(derr).Str("account_id", account.ID).Msg("failed to remove orphaned model account")
		}
		return nil, err
	}

	metrics.RequestsSubmittedTotal.WithLabelValues(string(domain.KindOnboarding)).Inc()
	return req, nil
}

func applyDecisionToOnboarding(req *domain.ModelOnboardingRequest, d domain.Decision) {
	at := d.At
	req.Status = d.To
	req.DecidedBy = d.DecidedBy
	req.DecidedAt = &at
	req.UpdatedAt = d.At
	if d.AdminNotes != "" {
		req.AdminNotes = d.AdminNotes
	}
}

func nonNil(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
