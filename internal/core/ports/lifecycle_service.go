package ports

import (
	"context"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// OnboardingInput is an applicant's submission.
type OnboardingInput struct {
	Password           string
	Applicant          domain.ApplicantProfile
	PortfolioAssetRefs []string
	IdempotencyKey     string
}

// CreateModelInput is an admin creating an already approved model.
type CreateModelInput struct {
	Password           string
	Applicant          domain.ApplicantProfile
	PortfolioAssetRefs []string
	AdminNotes         string
}

// OnboardingService runs the model onboarding state machine.
type OnboardingService interface {
	Submit(ctx context.Context, in OnboardingInput) (*domain.ModelOnboardingRequest, error)
	CreateApproved(ctx context.Context, in CreateModelInput, adminID string) (*domain.ModelOnboardingRequest, error)
	Decide(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ModelOnboardingRequest, error)
	Get(ctx context.Context, id string) (*domain.ModelOnboardingRequest, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ModelOnboardingRequest], error)
}

// ProductInput is a client's product listing submission.
type ProductInput struct {
	Product        domain.ProductFields
	ImageAssetRefs []string
	IdempotencyKey string
}

// ProductService runs the product listing state machine.
type ProductService interface {
	Submit(ctx context.Context, owner domain.SessionClaims, in ProductInput) (*domain.ProductListingRequest, error)
	Decide(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ProductListingRequest, error)
	Complete(ctx context.Context, id, adminID string) (*domain.ProductListingRequest, error)
	AssignModel(ctx context.Context, id string, modelRef *string, shoot *domain.ShootDetails, adminID string) (*domain.ProductListingRequest, error)
	Get(ctx context.Context, id string) (*domain.ProductListingRequest, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ProductListingRequest], error)
}
