package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
)

// IdempotencyHeader lets clients retry a submission without creating a duplicate.
const IdempotencyHeader = "Idempotency-Key"

// OnboardingHandler serves model applications and the admin model screens.
type OnboardingHandler struct {
	service ports.OnboardingService
}

func NewOnboardingHandler(service ports.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// Apply handles POST /api/model-applications.
//
// @Summary      Submit a model application
// @Tags         models
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                   false  "Client supplied retry key"
// @Param        body             body      modelApplicationRequest  true   "Applicant profile"
// @Success      201              {object}  domain.ModelOnboardingRequest
// @Failure      400              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /api/model-applications [post]
func (h *OnboardingHandler) Apply(c echo.Context) error {
	var req modelApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), ports.OnboardingInput{
		Password:           req.Password,
		Applicant:          req.toDomain(),
		PortfolioAssetRefs: req.PortfolioAssetRefs,
		IdempotencyKey:     c.Request().Header.Get(IdempotencyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/admin/models.
//
// @Summary      List model applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "pending, approved or rejected"
// @Param        search     query     string  false  "Matches applicant full name or email"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        pageSize   query     int     false  "Items per page (default 20, max 100)"
// @Param        sortField  query     string  false  "created_at, updated_at or status"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  pageResponse[domain.ModelOnboardingRequest]
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Router       /api/admin/models [get]
func (h *OnboardingHandler) List(c echo.Context) error {
	filter := listFilter(c)
	if err := checkStatusFilter(filter.Status, domain.KindOnboarding); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Create handles POST /api/admin/models: an admin adds an approved model directly.
//
// @Summary      Create a model
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createModelRequest  true  "Model profile"
// @Success      201   {object}  domain.ModelOnboardingRequest
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/models [post]
func (h *OnboardingHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createModelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.CreateApproved(c.Request().Context(), ports.CreateModelInput{
		Password:           req.Password,
		Applicant:          req.toDomain(),
		PortfolioAssetRefs: req.PortfolioAssetRefs,
		AdminNotes:         req.AdminNotes,
	}, claims.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Decide handles PATCH /api/admin/models.
//
// @Summary      Approve or reject a model application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      decideModelRequest  true  "status is approved or rejected"
// @Success      200   {object}  domain.ModelOnboardingRequest
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/models [patch]
func (h *OnboardingHandler) Decide(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req decideModelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	action := domain.ActionApprove
	if domain.RequestStatus(req.Status) == domain.StatusRejected {
		action = domain.ActionReject
	}

	updated, err := h.service.Decide(c.Request().Context(), req.ID, action, claims.AccountID, req.AdminNotes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
