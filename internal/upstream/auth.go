package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the backend's flat login payload: the token plus the
// identity fields side by side.
type loginResponse struct {
	Token    string         `json:"token"`
	ID       int64          `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Roles    domain.RoleSet `json:"roles"`
}

// Login exchanges credentials for a bearer token and the identity fields.
// Rejected credentials map to domain.ErrInvalidCredentials so the session
// layer can report a plain failure instead of an exception.
func (c *Client) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		switch statusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest, http.StatusNotFound:
			return ports.LoginResult{}, domain.ErrInvalidCredentials
		}
		return ports.LoginResult{}, err
	}
	if resp.Token == "" {
		return ports.LoginResult{}, fmt.Errorf("login response missing token: %w", domain.ErrUpstream)
	}

	return ports.LoginResult{
		Token: resp.Token,
		Identity: domain.Identity{
			ID:       resp.ID,
			Username: resp.Username,
			Email:    resp.Email,
			Roles:    resp.Roles,
		},
	}, nil
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Signup forwards a registration. A successful signup does not log the user
// in; the caller still authenticates separately.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) error {
	err := c.do(ctx, http.MethodPost, "/auth/signup", "", signupRequest{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	}, nil)
	if err != nil && statusCode(err) == http.StatusConflict {
		return domain.ErrUserExists
	}
	return err
}
