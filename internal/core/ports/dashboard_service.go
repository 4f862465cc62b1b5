package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// ModelDashboard is everything the model dashboard page renders.
type ModelDashboard struct {
	Account    *domain.Account
	Onboarding *domain.ModelOnboardingRequest
	Events     []domain.ProductListingRequest
	Activity   []domain.Activity
}

type DashboardService interface {
	ModelDashboard(ctx context.Context, claims domain.SessionClaims) (*ModelDashboard, error)
}
