package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/domain"
	"github.com/vogueline/agency-api/internal/core/ports"
	"github.com/vogueline/agency-api/internal/infrastructure/report"
)

const (
	defaultExportRows = 500
	maxExportRows     = 5000
)

// ProductHandler serves client product requests and their admin review.
type ProductHandler struct {
	service ports.ProductService
	now     func() time.Time
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service, now: time.Now}
}

// Submit handles POST /api/product-requests.
//
// @Summary      Submit a product listing request
// @Tags         product-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Client supplied retry key"
// @Param        body             body      productRequest  true   "Product fields and image asset refs"
// @Success      201              {object}  domain.ProductListingRequest
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /api/product-requests [post]
func (h *ProductHandler) Submit(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), claims, ports.ProductInput{
		Product:        req.toDomain(),
		ImageAssetRefs: req.ImageAssetRefs,
		IdempotencyKey: c.Request().Header.Get(IdempotencyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListOwn handles GET /api/product-requests: the caller's own requests.
//
// @Summary      List my product requests
// @Tags         product-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "pending, approved, rejected or completed"
// @Param        search    query     string  false  "Matches owner name, owner email or product name"
// @Param        page      query     int     false  "Page number"
// @Param        pageSize  query     int     false  "Items per page"
// @Success      200       {object}  pageResponse[domain.ProductListingRequest]
// @Failure      401       {object}  map[string]string
// @Router       /api/product-requests [get]
func (h *ProductHandler) ListOwn(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	filter := listFilter(c)
	if err := checkStatusFilter(filter.Status, domain.KindProduct); err != nil {
		return err
	}
	filter.OwnerID = claims.AccountID

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// List handles GET /api/admin/product-requests.
//
// @Summary      List product requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "pending, approved, rejected or completed"
// @Param        search     query     string  false  "Matches owner name, owner email or product name"
// @Param        page       query     int     false  "Page number"
// @Param        pageSize   query     int     false  "Items per page"
// @Param        sortField  query     string  false  "created_at, updated_at or status"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  pageResponse[domain.ProductListingRequest]
// @Failure      401        {object}  map[string]string
// @Router       /api/admin/product-requests [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := listFilter(c)
	if err := checkStatusFilter(filter.Status, domain.KindProduct); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /api/admin/product-requests/:id.
//
// @Summary      Get a product request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.ProductListingRequest
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/product-requests/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	req, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// Act handles PUT /api/admin/product-requests/:id.
//
// @Summary      Approve, reject, complete or assign a product request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      productActionRequest  true  "Action and its fields"
// @Success      200   {object}  domain.ProductListingRequest
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/product-requests/{id} [put]
func (h *ProductHandler) Act(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req productActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	var updated *domain.ProductListingRequest
	switch action := domain.RequestAction(req.Action); action {
	case domain.ActionAssign:
		updated, err = h.service.AssignModel(ctx, id, req.AssignedModelRef, req.shoot(), claims.AccountID)
	case domain.ActionComplete:
		updated, err = h.service.Complete(ctx, id, claims.AccountID)
	default:
		updated, err = h.service.Decide(ctx, id, action, claims.AccountID, req.AdminNotes)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Export handles GET /api/admin/product-requests/export.
//
// @Summary      Export product requests as xlsx
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        search  query  string  false  "Matches owner name, owner email or product name"
// @Param        limit   query  int     false  "Maximum rows (default 500, max 5000)"
// @Success      200
// @Failure      401  {object}  map[string]string
// @Router       /api/admin/product-requests/export [get]
func (h *ProductHandler) Export(c echo.Context) error {
	filter := listFilter(c)
	if err := checkStatusFilter(filter.Status, domain.KindProduct); err != nil {
		return err
	}
	limit := report.ParseCount(c.QueryParam("limit"), defaultExportRows, maxExportRows)

	items := make([]domain.ProductListingRequest, 0, domain.MaxPageSize)
	filter.PageSize = domain.MaxPageSize
	for filter.Page = 1; len(items) < limit; filter.Page++ {
		page, err := h.service.List(c.Request().Context(), filter)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
		if filter.Page >= page.TotalPages || len(page.Items) == 0 {
			break
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}

	data, err := report.ProductRequestsXLSX(items)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+report.ExportFilename(h.now())+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
