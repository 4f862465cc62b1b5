package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/ports"
)

// UserHandler serves /api/users/:id.
type UserHandler struct {
	service ports.AccountService
	cookie  CookieOptions
}

func NewUserHandler(service ports.AccountService, cookie CookieOptions) *UserHandler {
	return &UserHandler{service: service, cookie: cookie}
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	account, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update handles PUT /api/users/:id. Omitted fields are left unchanged.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Update(c.Request().Context(), claims, c.Param("id"), ports.UpdateAccountInput{
		DisplayName: req.DisplayName,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete handles DELETE /api/users/:id. Deleting yourself also ends the session.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), claims, id); err != nil {
		return err
	}
	if id == claims.AccountID {
		clearSessionCookie(c, h.cookie)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "account deleted"})
}
