package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

func TestOnboardingHandler_Apply(t *testing.T) {
	stub := &stubOnboardingService{
		submitFn: func(ctx context.Context, in ports.OnboardingInput) (*domain.ModelOnboardingRequest, error) {
			if in.IdempotencyKey != "retry-1" {
				t.Fatalf("idempotency key not forwarded: %q", in.IdempotencyKey)
			}
			if in.Applicant.DateOfBirth == nil || in.Applicant.DateOfBirth.Year() != 2000 {
				t.Fatalf("date of birth not parsed: %+v", in.Applicant.DateOfBirth)
			}
			if in.Applicant.HeightCm != 178 || len(in.PortfolioAssetRefs) != 2 {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.ModelOnboardingRequest{ID: "r1", Status: domain.StatusPending, Applicant: in.Applicant}, nil
		},
	}
	h := NewOnboardingHandler(stub)

	c, rec := jsonContext(http.MethodPost, "/api/model-applications", `{
		"fullName":"Mia Chen","email":"mia@example.com","password":"longenough",
		"dateOfBirth":"2000-05-17","heightCm":178,
		"portfolioAssetRefs":["https://cdn/a.jpg","https://cdn/b.jpg"]
	}`, nil)
	c.Request().Header.Set(IdempotencyHeader, "retry-1")

	if err := h.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp domain.ModelOnboardingRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", resp.Status)
	}
}

func TestOnboardingHandler_Apply_RequiresEmail(t *testing.T) {
	stub := &stubOnboardingService{
		submitFn: func(ctx context.Context, in ports.OnboardingInput) (*domain.ModelOnboardingRequest, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewOnboardingHandler(stub)

	c, _ := jsonContext(http.MethodPost, "/api/model-applications", `{"fullName":"Mia","password":"longenough"}`, nil)
	var ve *domain.ValidationError
	if err := h.Apply(c); !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestOnboardingHandler_Decide_MapsStatusToAction(t *testing.T) {
	cases := map[string]domain.RequestAction{
		"approved": domain.ActionApprove,
		"rejected": domain.ActionReject,
	}
	for status, want := range cases {
		stub := &stubOnboardingService{
			decideFn: func(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ModelOnboardingRequest, error) {
				if id != "r1" || action != want || adminID != adminSession.AccountID || notes != "ok" {
					t.Fatalf("unexpected call %s %s %s %q", id, action, adminID, notes)
				}
				return &domain.ModelOnboardingRequest{ID: id}, nil
			},
		}
		h := NewOnboardingHandler(stub)

		c, rec := jsonContext(http.MethodPatch, "/api/admin/models", `{"id":"r1","status":"`+status+`","adminNotes":"ok"}`, &adminSession)
		if err := h.Decide(c); err != nil || rec.Code != http.StatusOK {
			t.Fatalf("%s: err=%v code=%d", status, err, rec.Code)
		}
	}
}

func TestOnboardingHandler_Decide_RejectsUnknownStatus(t *testing.T) {
	h := NewOnboardingHandler(&stubOnboardingService{})

	c, _ := jsonContext(http.MethodPatch, "/api/admin/models", `{"id":"r1","status":"completed"}`, &adminSession)
	if err := h.Decide(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOnboardingHandler_Decide_PropagatesTransitionError(t *testing.T) {
	stub := &stubOnboardingService{
		decideFn: func(ctx context.Context, id string, action domain.RequestAction, adminID, notes string) (*domain.ModelOnboardingRequest, error) {
			return nil, &domain.TransitionError{Action: action, From: domain.StatusApproved, Allowed: []domain.RequestStatus{domain.StatusPending}}
		},
	}
	h := NewOnboardingHandler(stub)

	c, _ := jsonContext(http.MethodPatch, "/api/admin/models", `{"id":"r1","status":"rejected"}`, &adminSession)
	if err := h.Decide(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOnboardingHandler_Create_UsesAdminID(t *testing.T) {
	stub := &stubOnboardingService{
		createFn: func(ctx context.Context, in ports.CreateModelInput, adminID string) (*domain.ModelOnboardingRequest, error) {
			if adminID != adminSession.AccountID || in.AdminNotes != "walk-in" {
				t.Fatalf("unexpected call %s %+v", adminID, in)
			}
			return &domain.ModelOnboardingRequest{ID: "r2", Status: domain.StatusApproved}, nil
		},
	}
	h := NewOnboardingHandler(stub)

	c, rec := jsonContext(http.MethodPost, "/api/admin/models",
		`{"fullName":"Ana","email":"ana@example.com","password":"longenough","adminNotes":"walk-in"}`, &adminSession)
	if err := h.Create(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("err=%v code=%d", err, rec.Code)
	}
}

func TestOnboardingHandler_List(t *testing.T) {
	stub := &stubOnboardingService{
		listFn: func(ctx context.Context, filter domain.ListFilter) (domain.Page[domain.ModelOnboardingRequest], error) {
			if filter.Status != domain.StatusPending || filter.Search != "mia" {
				t.Fatalf("unexpected filter %+v", filter)
			}
			filter.Normalize()
			return domain.NewPage([]domain.ModelOnboardingRequest{{ID: "r1"}}, 21, filter), nil
		},
	}
	h := NewOnboardingHandler(stub)

	c, rec := jsonContext(http.MethodGet, "/api/admin/models?status=pending&search=mia", "", &adminSession)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(21) || resp["total_pages"] != float64(2) {
		t.Fatalf("unexpected page metadata %+v", resp)
	}
}
