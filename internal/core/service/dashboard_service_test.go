package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vogueline/agency-api/internal/core/domain"
)

func TestDashboard_ModelEventsAndActivity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.mustClient("brand@example.com")
	modelID := approvedModel(t, f, "mia@example.com")

	pending := submitProduct(t, f, owner, "Pending shoot")
	approved := submitProduct(t, f, owner, "Approved shoot")
	if _, err := f.product.Decide(ctx, approved.ID, domain.ActionApprove, "admin-1", ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	for _, id := range []string{pending.ID, approved.ID} {
		if _, err := f.product.AssignModel(ctx, id, &modelID, nil, "admin-1"); err != nil {
			t.Fatalf("assign failed: %v", err)
		}
	}

	dash, err := f.dashboard.ModelDashboard(ctx, domain.SessionClaims{AccountID: modelID, Role: domain.KindModel})
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if dash.Account.ID != modelID || dash.Onboarding == nil || dash.Onboarding.Status != domain.StatusApproved {
		t.Fatalf("unexpected profile data: %+v", dash)
	}
	if len(dash.Events) != 1 || dash.Events[0].ID != approved.ID {
		t.Fatalf("expected only the approved shoot, got %+v", dash.Events)
	}
	if len(dash.Activity) == 0 || dash.Activity[0].Action != domain.ActionAssign {
		t.Fatalf("expected newest activity to be the assignment, got %+v", dash.Activity)
	}
}

func TestDashboard_PendingAssignmentsDoNotCrowdOutEvents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	modelID := approvedModel(t, f, "mia@example.com")

	for i := 0; i <= domain.MaxPageSize; i++ {
		_ = f.products.Create(ctx, &domain.ProductListingRequest{
			ID:               fmt.Sprintf("a-%03d", i),
			Status:           domain.StatusPending,
			AssignedModelRef: &modelID,
		})
	}
	_ = f.products.Create(ctx, &domain.ProductListingRequest{ID: "z-approved", Status: domain.StatusApproved, AssignedModelRef: &modelID})
	_ = f.products.Create(ctx, &domain.ProductListingRequest{ID: "z-completed", Status: domain.StatusCompleted, AssignedModelRef: &modelID})

	dash, err := f.dashboard.ModelDashboard(ctx, domain.SessionClaims{AccountID: modelID, Role: domain.KindModel})
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if len(dash.Events) != 2 || dash.Events[0].ID != "z-approved" || dash.Events[1].ID != "z-completed" {
		t.Fatalf("expected approved and completed shoots, got %d events", len(dash.Events))
	}

	got := f.products.lastFilter.Statuses
	if len(got) != 2 || got[0] != domain.StatusApproved || got[1] != domain.StatusCompleted {
		t.Fatalf("status set must be pushed to the repository, got %v", got)
	}
}

func TestDashboard_RequiresModel(t *testing.T) {
	f := newFixture()
	client := f.mustClient("brand@example.com")

	if _, err := f.dashboard.ModelDashboard(context.Background(), client); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDashboard_ActivityFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.activities.insertErr = errStubDown
	req := submitApplicant(t, f, "quiet@example.com")

	if _, err := f.onboard.Decide(context.Background(), req.ID, domain.ActionApprove, "admin-1", ""); err != nil {
		t.Fatalf("activity failure must not fail the decision: %v", err)
	}
}
