package ports

import (
	"context"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

// BoardView is the task board's view state.
type BoardView struct {
	Tasks     []domain.Task
	CanCreate bool
}

// TaskDetailView is the detail screen's view state, including the viewer's
// capabilities. The flags are advisory UX hints; the backend still enforces.
type TaskDetailView struct {
	Task         domain.Task
	TeamMembers  []domain.Employee
	CanAssign    bool
	CanUpdate    bool
	MyAssignment *domain.Assignment
}

// TaskService backs the task board, detail, create and mutation flows.
// Every write invalidates the task resource and answers with re-fetched
// state rather than a locally patched copy.
type TaskService interface {
	Board(ctx context.Context, sess *domain.Session) (BoardView, error)
	Detail(ctx context.Context, sess *domain.Session, taskID int64) (TaskDetailView, error)
	Create(ctx context.Context, sess *domain.Session, in CreateTaskInput) error
	Assign(ctx context.Context, sess *domain.Session, taskID, employeeID int64) (TaskDetailView, error)
	UpdateStatus(ctx context.Context, sess *domain.Session, taskID int64, in UpdateTaskStatusInput) (TaskDetailView, error)
}

// AdminOverview is the user/team management screen's initial state.
type AdminOverview struct {
	Users []domain.User
	Teams []domain.Team
}

// AdminService backs the user and team administration views. Writes return
// the re-fetched collection they invalidated so the caller renders server
// truth, never a local merge.
type AdminService interface {
	Overview(ctx context.Context, sess *domain.Session) (AdminOverview, error)
	UpdateRoles(ctx context.Context, sess *domain.Session, userID int64, roles []string) ([]domain.User, error)
	DeleteUser(ctx context.Context, sess *domain.Session, userID int64) ([]domain.User, error)
	AvailableUsers(ctx context.Context, sess *domain.Session, role string) ([]domain.User, error)
	CreateTeam(ctx context.Context, sess *domain.Session, name string) ([]domain.Team, error)
	DeleteTeam(ctx context.Context, sess *domain.Session, teamID int64) ([]domain.Team, error)
	TeamProgress(ctx context.Context, sess *domain.Session, teamID int64) (domain.TeamProgress, error)
	AddMember(ctx context.Context, sess *domain.Session, teamID, userID int64) ([]domain.Team, error)
	RemoveMember(ctx context.Context, sess *domain.Session, teamID, userID int64) ([]domain.Team, error)
	Audit(ctx context.Context, sess *domain.Session) ([]domain.AuditEntry, error)
}

// PriorityBreakdown counts the cached task list by priority. Derived
// client-side for display; illustrative, not authoritative.
type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AnalyticsView combines the backend's authoritative aggregate with
// client-derived numbers computed from the cached task list.
type AnalyticsView struct {
	Stats        domain.DashboardStats
	InProgress   int
	HighPriority int
	Priorities   PriorityBreakdown
}

// AnalyticsService backs the dashboard and analytics screens.
type AnalyticsService interface {
	Dashboard(ctx context.Context, sess *domain.Session) (domain.DashboardStats, error)
	Analytics(ctx context.Context, sess *domain.Session) (AnalyticsView, error)
}
