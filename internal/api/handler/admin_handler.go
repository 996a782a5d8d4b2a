package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stwms/workforce-portal/internal/api/middleware"
	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// AdminHandler serves the user/team management and audit views.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type adminOverviewResponse struct {
	Users []domain.User `json:"users"`
	Teams []domain.Team `json:"teams"`
}

// Overview returns the combined users-and-teams management state.
//
// @Summary      Users and teams overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminOverviewResponse
// @Router       /admin/users [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	view, err := h.admin.Overview(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminOverviewResponse{Users: view.Users, Teams: view.Teams})
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=ROLE_EMPLOYEE ROLE_MANAGER ROLE_ADMIN"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

// UpdateRoles replaces a user's role set and returns the re-fetched roster.
//
// @Summary      Update a user's roles
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "User ID"
// @Param        body  body      updateRolesRequest  true  "Role tags"
// @Success      200   {object}  usersResponse
// @Router       /admin/users/{id}/roles [put]
func (h *AdminHandler) UpdateRoles(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req updateRolesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	sess := middleware.CurrentSession(c)
	users, err := h.admin.UpdateRoles(c.Request().Context(), sess, userID, req.Roles)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// DeleteUser removes a user by user ID and returns the re-fetched roster.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  usersResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	users, err := h.admin.DeleteUser(c.Request().Context(), sess, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// AvailableUsers lists users of one role not yet placed on a team.
//
// @Summary      Users available for team placement
// @Tags         admin
// @Produce      json
// @Param        role  query     string  true  "Role tag"
// @Success      200   {object}  usersResponse
// @Router       /admin/users/available [get]
func (h *AdminHandler) AvailableUsers(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = domain.RoleEmployee
	}
	sess := middleware.CurrentSession(c)
	users, err := h.admin.AvailableUsers(c.Request().Context(), sess, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

type teamsResponse struct {
	Teams []domain.Team `json:"teams"`
}

// Teams returns all teams with their membership.
//
// @Summary      List teams
// @Tags         admin
// @Produce      json
// @Success      200  {object}  teamsResponse
// @Router       /admin/teams [get]
func (h *AdminHandler) Teams(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	view, err := h.admin.Overview(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamsResponse{Teams: view.Teams})
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

// CreateTeam creates a team and returns the re-fetched team list.
//
// @Summary      Create a team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createTeamRequest  true  "Team name"
// @Success      201   {object}  teamsResponse
// @Failure      409   {object}  map[string]string
// @Router       /admin/teams [post]
func (h *AdminHandler) CreateTeam(c echo.Context) error {
	var req createTeamRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	sess := middleware.CurrentSession(c)
	teams, err := h.admin.CreateTeam(c.Request().Context(), sess, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, teamsResponse{Teams: teams})
}

// DeleteTeam removes a team and returns the re-fetched team list.
//
// @Summary      Delete a team
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Team ID"
// @Success      200  {object}  teamsResponse
// @Router       /admin/teams/{id} [delete]
func (h *AdminHandler) DeleteTeam(c echo.Context) error {
	teamID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	teams, err := h.admin.DeleteTeam(c.Request().Context(), sess, teamID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamsResponse{Teams: teams})
}

// TeamProgress returns the backend's completion aggregate for one team.
//
// @Summary      Team progress
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Team ID"
// @Success      200  {object}  domain.TeamProgress
// @Router       /admin/teams/{id}/progress [get]
func (h *AdminHandler) TeamProgress(c echo.Context) error {
	teamID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	progress, err := h.admin.TeamProgress(c.Request().Context(), sess, teamID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, progress)
}

// AddMember places a user on a team and returns the re-fetched team list.
//
// @Summary      Add a team member
// @Tags         admin
// @Produce      json
// @Param        id      path      int  true  "Team ID"
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  teamsResponse
// @Router       /admin/teams/{id}/members/{userID} [post]
func (h *AdminHandler) AddMember(c echo.Context) error {
	teamID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := idParam(c, "userID")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	teams, err := h.admin.AddMember(c.Request().Context(), sess, teamID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamsResponse{Teams: teams})
}

// RemoveMember takes a user off a team and returns the re-fetched team list.
//
// @Summary      Remove a team member
// @Tags         admin
// @Produce      json
// @Param        id      path      int  true  "Team ID"
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  teamsResponse
// @Router       /admin/teams/{id}/members/{userID} [delete]
func (h *AdminHandler) RemoveMember(c echo.Context) error {
	teamID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := idParam(c, "userID")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	teams, err := h.admin.RemoveMember(c.Request().Context(), sess, teamID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teamsResponse{Teams: teams})
}

type auditResponse struct {
	Entries []domain.AuditEntry `json:"entries"`
}

// Audit returns the backend audit trail.
//
// @Summary      Audit log
// @Tags         admin
// @Produce      json
// @Success      200  {object}  auditResponse
// @Router       /admin/audit [get]
func (h *AdminHandler) Audit(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	entries, err := h.admin.Audit(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auditResponse{Entries: entries})
}
