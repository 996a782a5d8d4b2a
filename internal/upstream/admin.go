package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

// ListUsers fetches the admin user roster.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRoles replaces a user's role set. The payload is a bare array of
// role tags, matching the backend contract.
func (c *Client) UpdateUserRoles(ctx context.Context, token string, userID int64, roles []string) error {
	path := fmt.Sprintf("/api/admin/users/%d/roles", userID)
	return c.do(ctx, http.MethodPut, path, token, roles, nil)
}

// DeleteUser removes a user by user ID.
func (c *Client) DeleteUser(ctx context.Context, token string, userID int64) error {
	path := fmt.Sprintf("/api/admin/users/%d", userID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// AvailableUsers fetches users holding the given role that are not yet on a
// team.
func (c *Client) AvailableUsers(ctx context.Context, token, role string) ([]domain.User, error) {
	var users []domain.User
	path := "/api/admin/users/available?role=" + url.QueryEscape(role)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListTeams fetches all teams with their membership.
func (c *Client) ListTeams(ctx context.Context, token string) ([]domain.Team, error) {
	var teams []domain.Team
	if err := c.do(ctx, http.MethodGet, "/api/admin/teams", token, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

type createTeamRequest struct {
	Name string `json:"name"`
}

// CreateTeam creates a named team.
func (c *Client) CreateTeam(ctx context.Context, token, name string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/teams", token, createTeamRequest{Name: name}, nil)
}

// DeleteTeam removes a team.
func (c *Client) DeleteTeam(ctx context.Context, token string, teamID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/teams/%d", teamID), token, nil, nil)
}

// TeamProgress fetches the backend's completion aggregate for one team.
func (c *Client) TeamProgress(ctx context.Context, token string, teamID int64) (domain.TeamProgress, error) {
	var progress domain.TeamProgress
	path := fmt.Sprintf("/api/admin/teams/%d/progress", teamID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &progress); err != nil {
		return domain.TeamProgress{}, err
	}
	return progress, nil
}

// AddTeamMember places a user on a team.
func (c *Client) AddTeamMember(ctx context.Context, token string, teamID, userID int64) error {
	path := fmt.Sprintf("/api/admin/teams/%d/members/%d", teamID, userID)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

// RemoveTeamMember takes a user off a team.
func (c *Client) RemoveTeamMember(ctx context.Context, token string, teamID, userID int64) error {
	path := fmt.Sprintf("/api/admin/teams/%d/members/%d", teamID, userID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// ListAudit fetches the audit trail.
func (c *Client) ListAudit(ctx context.Context, token string) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry
	if err := c.do(ctx, http.MethodGet, "/api/admin/audit", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
