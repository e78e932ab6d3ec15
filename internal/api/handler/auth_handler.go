package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string           false  "Replays the first response for a repeated key"
// @Param        body             body      registerRequest  true   "User registration details"
// @Success      201              {object}  registerResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, registerResponse{Status: statusSuccess, User: user})
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Status:       statusSuccess,
	})
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Status:       statusSuccess,
	})
}

// Me returns the account behind the access token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Get(c.Request().Context(), claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidAccount
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns a page of users.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Param        items_per_page  query     int     false  "Page size (default 10, max 100)"
// @Param        page            query     int     false  "1-based page number"
// @Param        search          query     string  false  "Substring of name or email"
// @Success      200             {object}  userListResponse
// @Failure      500             {object}  errorResponse
// @Router       /auth [get]
func (h *AuthHandler) List(c echo.Context) error {
	page, err := h.authService.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one user.
//
// @Summary      Get a user
// @Tags         auth
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/{id} [get]
func (h *AuthHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to a user.
//
// @Summary      Update a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/{id} [put]
func (h *AuthHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user and their posts.
//
// @Summary      Delete a user
// @Tags         auth
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/{id} [delete]
func (h *AuthHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.authService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAccount):
		return "unknown_account"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	default:
		return "error"
	}
}
