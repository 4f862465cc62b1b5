package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Model handles GET /api/model/dashboard.
//
// @Summary      Model dashboard
// @Tags         models
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/model/dashboard [get]
func (h *DashboardHandler) Model(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	d, err := h.service.ModelDashboard(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Profile:     d.Account,
		Application: d.Onboarding,
		Events:      d.Events,
		Activity:    d.Activity,
	})
}
