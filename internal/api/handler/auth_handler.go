package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vogueline/agency-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Signup registers a client account and opens a session.
//
// @Summary      Register a client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
	})
	if err != nil {
		return err
	}
	return h.respondWithSession(c, http.StatusCreated, session)
}

// Login authenticates any non-admin account.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithSession(c, http.StatusOK, session)
}

// Logout clears the session cookie. Tokens are stateless, so nothing is revoked.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, h.cookie)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Me returns the account behind the current session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	account, err := h.authService.Me(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: account})
}

// AdminAuth signs an admin up or in, depending on action.
//
// @Summary      Admin signup or login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminAuthRequest  true  "action is signup or login"
// @Success      200   {object}  sessionResponse
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin-auth [post]
func (h *AuthHandler) AdminAuth(c echo.Context) error {
	var req adminAuthRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if req.Action == "signup" {
		session, err := h.authService.AdminSignup(ctx, req.Username, req.Password, req.ConfirmPassword)
		if err != nil {
			return err
		}
		return h.respondWithSession(c, http.StatusCreated, session)
	}

	session, err := h.authService.AdminLogin(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithSession(c, http.StatusOK, session)
}

func (h *AuthHandler) respondWithSession(c echo.Context, status int, s *ports.Session) error {
	setSessionCookie(c, h.cookie, s)
	expires := s.ExpiresAt
	return c.JSON(status, sessionResponse{User: s.Account, Token: s.Token, ExpiresAt: &expires})
}
