package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stwms/workforce-portal/internal/api/middleware"
	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// AuthHandler owns the login, logout and signup endpoints. It is the only
// handler that sets or clears the session cookie.
type AuthHandler struct {
	sessions     ports.SessionService
	cookieSecret string
}

func NewAuthHandler(sessions ports.SessionService, cookieSecret string) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookieSecret: cookieSecret}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type identityResponse struct {
	ID       int64          `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Roles    domain.RoleSet `json:"roles"`
}

type loginResponse struct {
	Identity identityResponse `json:"identity"`
}

func toIdentityResponse(id domain.Identity) identityResponse {
	return identityResponse{ID: id.ID, Username: id.Username, Email: id.Email, Roles: id.Roles}
}

// Login authenticates against the backend and starts a portal session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	sess, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return err
	}

	cookie, err := middleware.NewSessionCookie(h.cookieSecret, sess)
	if err != nil {
		// The session exists but cannot be referenced; drop it again so no
		// orphaned credential lingers in the store.
		_ = h.sessions.Logout(c.Request().Context(), sess.ID)
		return err
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, loginResponse{Identity: toIdentityResponse(sess.Identity)})
}

// Logout ends the session. Safe to call without one.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      204  "session cleared"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		if sid, err := middleware.DecodeSessionID(h.cookieSecret, cookie.Value); err == nil {
			if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
				return err
			}
		}
	}
	c.SetCookie(middleware.ExpiredSessionCookie())
	return c.NoContent(http.StatusNoContent)
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=ROLE_EMPLOYEE ROLE_MANAGER ROLE_ADMIN"`
}

// Signup registers a new account with the backend. It never starts a
// session; the user logs in afterwards.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration fields"
// @Success      201   "account created"
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	err := h.sessions.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		// Deliberately re-raised so the caller can tell failure reasons
		// apart; the central error handler maps the known ones.
		return err
	}

	return c.NoContent(http.StatusCreated)
}
