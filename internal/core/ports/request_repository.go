package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// OnboardingRepository persists model onboarding requests.
type OnboardingRepository interface {
	Create(ctx context.Context, req *domain.ModelOnboardingRequest) error
	FindByID(ctx context.Context, id string) (*domain.ModelOnboardingRequest, error)
	FindByAccountID(ctx context.Context, accountID string) (*domain.ModelOnboardingRequest, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.ModelOnboardingRequest, int64, error)
	// ApplyDecision writes the decision only if the stored status still equals
	// d.From. It reports false when no document matched.
	ApplyDecision(ctx context.Context, id string, d domain.Decision) (bool, error)
}

// ProductRequestRepository persists product listing requests.
type ProductRequestRepository interface {
	Create(ctx context.Context, req *domain.ProductListingRequest) error
	FindByID(ctx context.Context, id string) (*domain.ProductListingRequest, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.ProductListingRequest, int64, error)
	// ApplyDecision is a compare-and-swap on status; see OnboardingRepository.
	ApplyDecision(ctx context.Context, id string, d domain.Decision) (bool, error)
	// Assign sets or clears the assigned model as long as the request is in
	// one of the given statuses. It reports false when no document matched.
	Assign(ctx context.Context, id string, a domain.Assignment, allowed []domain.RequestStatus) (bool, error)
}
