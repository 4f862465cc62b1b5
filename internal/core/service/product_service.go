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

var assignableStatuses = []domain.RequestStatus{domain.StatusPending, domain.StatusApproved}

// ProductService runs product listing requests from client submission through
// approval, model assignment and completion.
type ProductService struct {
	accounts ports.AccountRepository
	repo     ports.ProductRequestRepository
	idem     idempotency
	activity activityLog
	logger   zerolog.Logger
}

func NewProductService(
	accounts ports.AccountRepository,
	repo ports.ProductRequestRepository,
	activities ports.ActivityRepository,
	guard ports.IdempotencyGuard,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		accounts: accounts,
		repo:     repo,
		idem:     idempotency{guard: guard, kind: domain.KindProduct, log: logger},
		activity: activityLog{repo: activities, log: logger},
		logger:   logger,
	}
}

// Submit creates a pending request owned by the calling client.
func (s *ProductService) Submit(ctx context.Context, owner domain.SessionClaims, in ports.ProductInput) (*domain.ProductListingRequest, error) {
	if owner.Role != domain.KindClient {
		return nil, domain.ErrForbidden
	}
	product, err := cleanProduct(in.Product)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, owner.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	idemKey := ""
	if in.IdempotencyKey != "" {
		idemKey = owner.AccountID + ":" + in.IdempotencyKey
	}
	existingID, reserved, err := s.idem.reserve(ctx, idemKey)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		return s.repo.FindByID(ctx, existingID)
	}

	now := time.Now().UTC()
	req := &domain.ProductListingRequest{
		OwnerAccountID: account.ID,
		OwnerName:      account.DisplayName,
		OwnerEmail:     account.Email,
		Product:        product,
		ImageAssetRefs: nonNil(in.ImageAssetRefs),
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		if reserved {
			s.idem.release(ctx, idemKey)
		}
		s.logger.Error().Err(err).Str("owner_id", account.ID).Msg("failed to create product request")
		return nil, err
	}
	if reserved {
		s.idem.commit(ctx, idemKey, req.ID)
	}

	metrics.RequestsSubmittedTotal.WithLabelValues(string(domain.KindProduct)).Inc()
	s.activity.record(ctx, domain.Activity{
		AccountID:   account.ID,
		RequestID:   req.ID,
		RequestKind: domain.KindProduct,
		Action:      domain.ActionSubmit,
		Message:     "product request submitted: " + product.Name,
		ActorID:     account.ID,
	})
	s.logger.Info().Str("request_id", req.ID).Str("owner_id", account.ID).Msg("product request submitted")
	return req, nil
}

// Decide applies approve, reject or complete.
func (s *ProductService) Decide(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ProductListingRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from, to, err := decisionFor(action, req.Status, domain.KindProduct)
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
	if to == domain.StatusCompleted {
		at := d.At
		d.CompletedAt = &at
	}

	ok, err := s.repo.ApplyDecision(ctx, id, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, rerr := s.repo.FindByID(ctx, id)
		return nil, lostRace(domain.KindProduct, action, statusOf(current), []domain.RequestStatus{from}, rerr)
	}

	applyDecisionToProduct(req, d)
	metrics.RequestTransitionsTotal.WithLabelValues(string(domain.KindProduct), string(to)).Inc()
	s.activity.record(ctx, domain.Activity{
		AccountID:   req.OwnerAccountID,
		RequestID:   req.ID,
		RequestKind: domain.KindProduct,
		Action:      action,
		Message:     "product request " + string(to) + ": " + req.Product.Name,
		ActorID:     adminID,
	})
	s.logger.Info().Str("request_id", id).Str("status", string(to)).Str("admin_id", adminID).Msg("product request decided")
	return req, nil
}

// Complete moves an approved request to completed.
func (s *ProductService) Complete(ctx context.Context, id, adminID string) (*domain.ProductListingRequest, error) {
	return s.Decide(ctx, id, domain.ActionComplete, adminID, "")
}

// AssignModel attaches modelRef to a pending or approved request, or clears
// the assignment when modelRef is nil.
func (s *ProductService) AssignModel(ctx context.Context, id string, modelRef *string, shoot *domain.ShootDetails, adminID string) (*domain.ProductListingRequest, error) {
	if modelRef != nil {
		ref := strings.TrimSpace(*modelRef)
		if ref == "" {
			modelRef = nil
		} else {
			modelRef = &ref
		}
	}
	if modelRef == nil {
		shoot = nil
	} else if err := s.checkModel(ctx, *modelRef); err != nil {
		return nil, err
	}

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !statusIn(req.Status, assignableStatuses) {
		return nil, &domain.TransitionError{Action: domain.ActionAssign, From: req.Status, Allowed: assignableStatuses}
	}

	a := domain.Assignment{ModelRef: modelRef, ShootDetails: shoot, AssignedBy: adminID, At: time.Now().UTC()}
	ok, err := s.repo.Assign(ctx, id, a, assignableStatuses)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, rerr := s.repo.FindByID(ctx, id)
		return nil, lostRace(domain.KindProduct, domain.ActionAssign, statusOf(current), assignableStatuses, rerr)
	}

	previous := req.AssignedModelRef
	req.AssignedModelRef = modelRef
	req.ShootDetails = shoot
	req.UpdatedAt = a.At

	if modelRef != nil {
		s.activity.record(ctx, domain.Activity{
			AccountID:   *modelRef,
			RequestID:   req.ID,
			RequestKind: domain.KindProduct,
			Action:      domain.ActionAssign,
			Message:     "assigned to shoot: " + req.Product.Name,
			ActorID:     adminID,
		})
	} else if previous != nil {
		s.activity.record(ctx, domain.Activity{
			AccountID:   *previous,
			RequestID:   req.ID,
			RequestKind: domain.KindProduct,
			Action:      domain.ActionAssign,
			Message:     "removed from shoot: " + req.Product.Name,
			ActorID:     adminID,
		})
	}
	s.logger.Info().Str("request_id", id).Bool("assigned", modelRef != nil).Str("admin_id", adminID).Msg("product request assignment changed")
	return req, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.ProductListingRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of product requests. OwnerID and ModelRef on the
// filter narrow the result to one client or one assigned model.
func (s *ProductService) List(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ProductListingRequest], error) {
	filter.Normalize()
	if filter.Status != "" && !filter.Status.Valid(domain.KindProduct) {
		return domain.Page[domain.ProductListingRequest]{}, domain.NewValidationError("status", "unknown status "+string(filter.Status))
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.ProductListingRequest]{}, err
	}
	return domain.NewPage(items, total, filter), nil
}

func (s *ProductService) checkModel(ctx context.Context, ref string) error {
	model, err := s.accounts.FindByID(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("assigned_model_ref", "no such model")
		}
		return err
	}
	if model.Kind != domain.KindModel || model.Status != domain.AccountActive {
		return domain.NewValidationError("assigned_model_ref", "must reference an active model")
	}
	return nil
}

func cleanProduct(p domain.ProductFields) (domain.ProductFields, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))

	switch {
	case p.Name == "":
		return p, domain.NewValidationError("name", "product name is required")
	case p.Category == "":
		return p, domain.NewValidationError("category", "category is required")
	case p.Price < 0:
		return p, domain.NewValidationError("price", "price must not be negative")
	case p.Quantity < 0:
		return p, domain.NewValidationError("quantity", "quantity must not be negative")
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if len(p.Currency) != 3 {
		return p, domain.NewValidationError("currency", "currency must be a 3-letter ISO code")
	}
	return p, nil
}

func applyDecisionToProduct(req *domain.ProductListingRequest, d domain.Decision) {
	req.Status = d.To
	req.UpdatedAt = d.At
	if d.AdminNotes != "" {
		req.AdminNotes = d.AdminNotes
	}
	if d.CompletedAt != nil {
		req.CompletedAt = d.CompletedAt
		return
	}
	at := d.At
	req.DecidedBy = d.DecidedBy
	req.DecidedAt = &at
}

func statusOf(req *domain.ProductListingRequest) domain.RequestStatus {
	if req == nil {
		return ""
	}
	return req.Status
}

func statusIn(s domain.RequestStatus, set []domain.RequestStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
