package service

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

const dashboardActivityLimit = 20

// DashboardService assembles the model dashboard.
type DashboardService struct {
	accounts   ports.AccountRepository
	onboarding ports.OnboardingRepository
	products   ports.ProductRequestRepository
	activities ports.ActivityRepository
}

func NewDashboardService(accounts ports.AccountRepository, onboarding ports.OnboardingRepository, products ports.ProductRequestRepository, activities ports.ActivityRepository) *DashboardService {
	return &DashboardService{accounts: accounts, onboarding: onboarding, products: products, activities: activities}
}

// ModelDashboard returns the model's account, application, the approved or
// completed shoots they are assigned to, and their recent activity.
func (s *DashboardService) ModelDashboard(ctx context.Context, claims domain.SessionClaims) (*ports.ModelDashboard, error) {
	if claims.Role != domain.KindModel {
		return nil, domain.ErrForbidden
	}

	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	application, err := s.onboarding.FindByAccountID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}

	filter := domain.ListFilter{
		ModelRef:  claims.AccountID,
		Statuses:  []domain.RequestStatus{domain.StatusApproved, domain.StatusCompleted},
		PageSize:  domain.MaxPageSize,
		SortField: "updated_at",
	}
	filter.Normalize()
	events, _, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.ProductListingRequest{}
	}

	activity, err := s.activities.ListByAccount(ctx, claims.AccountID, dashboardActivityLimit)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		activity = []domain.Activity{}
	}

	return &ports.ModelDashboard{
		Account:    account,
		Onboarding: application,
		Events:     events,
		Activity:   activity,
	}, nil
}
