package service

import (
	"context"
	"sync"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub backend shared by the service tests
// ---------------------------------------------------------------------------

// stubBackend implements ports.UpstreamClient with canned data, per-call
// counters and optional injected errors. Counters are the main assertion
// surface: they prove whether a read was served from cache or re-fetched.
type stubBackend struct {
	mu sync.Mutex

	loginFn  func(username, password string) (ports.LoginResult, error)
	signupFn func(in ports.SignupInput) error

	tasks      []domain.Task
	tasksErr   error
	members    []domain.Employee
	membersErr error
	users      []domain.User
	usersErr   error
	teams      []domain.Team
	teamsErr   error
	stats      domain.DashboardStats
	statsErr   error
	audit      []domain.AuditEntry
	auditErr   error
	progress   domain.TeamProgress

	writeErr error // returned by every mutation when set

	listTasksCalls    int
	teamMembersCalls  int
	listUsersCalls    int
	listTeamsCalls    int
	statsCalls        int
	auditCalls        int
	createTaskCalls   int
	assignCalls       int
	updateStatusCalls int

	lastCreateTask ports.CreateTaskInput
	lastRoles      []string
	lastToken      string
}

func (b *stubBackend) Login(_ context.Context, username, password string) (ports.LoginResult, error) {
	if b.loginFn != nil {
		return b.loginFn(username, password)
	}
	return ports.LoginResult{}, domain.ErrInvalidCredentials
}

func (b *stubBackend) Signup(_ context.Context, in ports.SignupInput) error {
	if b.signupFn != nil {
		return b.signupFn(in)
	}
	return nil
}

func (b *stubBackend) ListTasks(_ context.Context, token string) ([]domain.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listTasksCalls++
	b.lastToken = token
	if b.tasksErr != nil {
		return nil, b.tasksErr
	}
	return b.tasks, nil
}

func (b *stubBackend) CreateTask(_ context.Context, _ string, in ports.CreateTaskInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createTaskCalls++
	b.lastCreateTask = in
	return b.writeErr
}

func (b *stubBackend) TeamMembers(_ context.Context, _ string) ([]domain.Employee, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.teamMembersCalls++
	if b.membersErr != nil {
		return nil, b.membersErr
	}
	return b.members, nil
}

func (b *stubBackend) AssignTask(_ context.Context, _ string, _, _ int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.assignCalls++
	return b.writeErr
}

func (b *stubBackend) UpdateTaskStatus(_ context.Context, _ string, _ int64, _ ports.UpdateTaskStatusInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateStatusCalls++
	return b.writeErr
}

func (b *stubBackend) ListUsers(_ context.Context, _ string) ([]domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listUsersCalls++
	if b.usersErr != nil {
		return nil, b.usersErr
	}
	return b.users, nil
}

func (b *stubBackend) UpdateUserRoles(_ context.Context, _ string, _ int64, roles []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastRoles = roles
	return b.writeErr
}

func (b *stubBackend) DeleteUser(_ context.Context, _ string, _ int64) error {
	return b.writeErr
}

func (b *stubBackend) AvailableUsers(_ context.Context, _, _ string) ([]domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.usersErr != nil {
		return nil, b.usersErr
	}
	return b.users, nil
}

func (b *stubBackend) ListTeams(_ context.Context, _ string) ([]domain.Team, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listTeamsCalls++
	if b.teamsErr != nil {
		return nil, b.teamsErr
	}
	return b.teams, nil
}

func (b *stubBackend) CreateTeam(_ context.Context, _, _ string) error {
	return b.writeErr
}

func (b *stubBackend) DeleteTeam(_ context.Context, _ string, _ int64) error {
	return b.writeErr
}

func (b *stubBackend) TeamProgress(_ context.Context, _ string, _ int64) (domain.TeamProgress, error) {
	return b.progress, b.writeErr
}

func (b *stubBackend) AddTeamMember(_ context.Context, _ string, _, _ int64) error {
	return b.writeErr
}

func (b *stubBackend) RemoveTeamMember(_ context.Context, _ string, _, _ int64) error {
	return b.writeErr
}

func (b *stubBackend) ListAudit(_ context.Context, _ string) ([]domain.AuditEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.auditCalls++
	if b.auditErr != nil {
		return nil, b.auditErr
	}
	return b.audit, nil
}

func (b *stubBackend) DashboardStats(_ context.Context, _ string) (domain.DashboardStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statsCalls++
	if b.statsErr != nil {
		return domain.DashboardStats{}, b.statsErr
	}
	return b.stats, nil
}

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

func employeeSession(username string) *domain.Session {
	return &domain.Session{
		ID:    "sess-" + username,
		Token: "tok-" + username,
		Identity: domain.Identity{
			ID:       1,
			Username: username,
			Email:    username + "@example.com",
			Roles:    domain.RoleSet{domain.RoleEmployee},
		},
	}
}

func managerSession(username string) *domain.Session {
	sess := employeeSession(username)
	sess.Identity.Roles = domain.RoleSet{domain.RoleManager}
	return sess
}

func adminSession(username string) *domain.Session {
	sess := employeeSession(username)
	sess.Identity.Roles = domain.RoleSet{domain.RoleAdmin}
	return sess
}

func assignedTask(id int64, status domain.TaskStatus, assignee string) domain.Task {
	t := domain.Task{
		ID:       id,
		Title:    "task",
		Priority: domain.PriorityMedium,
		Status:   status,
		DueDate:  "2026-09-01",
	}
	if assignee != "" {
		t.Assignments = []domain.Assignment{{
			ID:       id * 10,
			Employee: domain.Employee{ID: 5, User: domain.EmployeeUser{ID: 5, Username: assignee}},
		}}
	}
	return t
}

func testCache() *ViewCache {
	return NewViewCache(64, 0)
}
