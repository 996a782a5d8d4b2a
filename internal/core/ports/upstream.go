package ports

import (
	"context"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

// LoginResult is the backend's answer to a successful credential check.
type LoginResult struct {
	Token    string
	Identity domain.Identity
}

// SignupInput carries the registration fields forwarded to the backend.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// CreateTaskInput mirrors POST /api/tasks. Optional fields are pointers so
// the wire payload can omit them entirely, as the backend expects.
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      domain.TaskPriority
	DueDate       string
	ExpectedHours *float64
	AssigneeID    *int64
}

// UpdateTaskStatusInput mirrors PUT /api/tasks/{id}/status.
type UpdateTaskStatusInput struct {
	Status          domain.TaskStatus
	ProgressPercent int
	Report          string
}

// UpstreamClient is the portal's outbound contract with the STWMS backend.
// Every call attaches the caller's bearer token; the backend is the sole
// authority on what that token may do. Contexts are request-scoped so an
// abandoned view tears down its in-flight reads.
type UpstreamClient interface {
	// Auth.
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Signup(ctx context.Context, in SignupInput) error

	// Tasks.
	ListTasks(ctx context.Context, token string) ([]domain.Task, error)
	CreateTask(ctx context.Context, token string, in CreateTaskInput) error
	TeamMembers(ctx context.Context, token string) ([]domain.Employee, error)
	AssignTask(ctx context.Context, token string, taskID, employeeID int64) error
	UpdateTaskStatus(ctx context.Context, token string, taskID int64, in UpdateTaskStatusInput) error

	// Admin: users.
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	UpdateUserRoles(ctx context.Context, token string, userID int64, roles []string) error
	DeleteUser(ctx context.Context, token string, userID int64) error
	AvailableUsers(ctx context.Context, token, role string) ([]domain.User, error)

	// Admin: teams.
	ListTeams(ctx context.Context, token string) ([]domain.Team, error)
	CreateTeam(ctx context.Context, token, name string) error
	DeleteTeam(ctx context.Context, token string, teamID int64) error
	TeamProgress(ctx context.Context, token string, teamID int64) (domain.TeamProgress, error)
	AddTeamMember(ctx context.Context, token string, teamID, userID int64) error
	RemoveTeamMember(ctx context.Context, token string, teamID, userID int64) error

	// Admin: audit.
	ListAudit(ctx context.Context, token string) ([]domain.AuditEntry, error)

	// Analytics.
	DashboardStats(ctx context.Context, token string) (domain.DashboardStats, error)
}
