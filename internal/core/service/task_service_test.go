package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

func floatPtr(f float64) *float64 { return &f }
func int64Ptr(i int64) *int64     { return &i }

// ---------------------------------------------------------------------------
// Board tests
// ---------------------------------------------------------------------------

func TestTaskService_Board_EmployeeCannotCreate(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Board(context.Background(), employeeSession("worker"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CanCreate {
		t.Error("employee must not see the create control")
	}
	if len(view.Tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(view.Tasks))
	}
}

func TestTaskService_Board_ManagerAndAdminCanCreate(t *testing.T) {
	backend := &stubBackend{}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	for _, sess := range []*domain.Session{managerSession("m"), adminSession("a")} {
		view, err := svc.Board(context.Background(), sess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !view.CanCreate {
			t.Errorf("roles %v must see the create control", sess.Identity.Roles)
		}
	}
}

func TestTaskService_Board_SecondReadServedFromCache(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())
	sess := employeeSession("worker")

	if _, err := svc.Board(context.Background(), sess); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := svc.Board(context.Background(), sess); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if backend.listTasksCalls != 1 {
		t.Errorf("second read must hit the cache, got %d backend calls", backend.listTasksCalls)
	}
}

func TestTaskService_Board_CacheIsSessionScoped(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, _ = svc.Board(context.Background(), employeeSession("one"))
	_, _ = svc.Board(context.Background(), employeeSession("two"))

	if backend.listTasksCalls != 2 {
		t.Errorf("distinct sessions must not share cache entries, got %d calls", backend.listTasksCalls)
	}
}

// ---------------------------------------------------------------------------
// Detail tests
// ---------------------------------------------------------------------------

func TestTaskService_Detail_ManagerSeesRosterAndAssignControl(t *testing.T) {
	backend := &stubBackend{
		tasks:   []domain.Task{assignedTask(1, domain.StatusOpen, "")},
		members: []domain.Employee{{ID: 5, User: domain.EmployeeUser{ID: 5, Username: "worker"}}},
	}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Detail(context.Background(), managerSession("boss"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.CanAssign {
		t.Error("manager must be able to assign an OPEN task")
	}
	if len(view.TeamMembers) != 1 {
		t.Errorf("expected roster of 1, got %d", len(view.TeamMembers))
	}
	if backend.teamMembersCalls != 1 {
		t.Errorf("expected 1 roster fetch, got %d", backend.teamMembersCalls)
	}
}

func TestTaskService_Detail_EmployeeGetsNoRosterFetch(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Detail(context.Background(), employeeSession("worker"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CanAssign {
		t.Error("employee must not see the assign control")
	}
	if backend.teamMembersCalls != 0 {
		t.Errorf("roster must not be fetched for an employee, got %d calls", backend.teamMembersCalls)
	}
}

func TestTaskService_Detail_AssignControlOnlyWhileOpen(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusAssigned, "worker")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Detail(context.Background(), managerSession("boss"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CanAssign {
		t.Error("assign control must disappear once the task leaves OPEN")
	}
}

func TestTaskService_Detail_AssigneeCanUpdate(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusInProgress, "worker")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Detail(context.Background(), employeeSession("worker"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.CanUpdate {
		t.Error("assignee must be able to update status")
	}
	if view.MyAssignment == nil {
		t.Fatal("assignee must see their own assignment")
	}
	if view.MyAssignment.Employee.User.Username != "worker" {
		t.Errorf("wrong assignment surfaced: %+v", view.MyAssignment)
	}
}

func TestTaskService_Detail_NonAssigneeCannotUpdate(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusInProgress, "worker")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Detail(context.Background(), employeeSession("bystander"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CanUpdate {
		t.Error("non-assignee must not see the update control")
	}
	if view.MyAssignment != nil {
		t.Error("non-assignee has no assignment of their own")
	}
}

func TestTaskService_Detail_NotFound(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, err := svc.Detail(context.Background(), employeeSession("worker"), 999)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Detail_RosterFailureDegradesToEmpty(t *testing.T) {
	backend := &stubBackend{
		tasks:      []domain.Task{assignedTask(1, domain.StatusOpen, "")},
		membersErr: errors.New("roster endpoint down"),
	}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	view, err := svc.Detail(context.Background(), managerSession("boss"), 1)
	if err != nil {
		t.Fatalf("roster failure must not fail the view: %v", err)
	}
	if view.TeamMembers != nil {
		t.Errorf("expected empty roster, got %v", view.TeamMembers)
	}
}

func TestTaskService_Detail_TaskFetchFailureIsFatal(t *testing.T) {
	backend := &stubBackend{tasksErr: errors.New("task endpoint down")}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, err := svc.Detail(context.Background(), managerSession("boss"), 1)
	if err == nil {
		t.Fatal("task fetch failure must fail the detail view")
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestTaskService_Create_ManagerWithoutAssigneeNeverReachesBackend(t *testing.T) {
	backend := &stubBackend{}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	err := svc.Create(context.Background(), managerSession("boss"), ports.CreateTaskInput{
		Title:    "ship it",
		Priority: domain.PriorityHigh,
		DueDate:  "2026-09-15",
	})
	if !errors.Is(err, domain.ErrAssigneeRequired) {
		t.Fatalf("expected ErrAssigneeRequired, got %v", err)
	}
	if backend.createTaskCalls != 0 {
		t.Errorf("validation must run before any network call, got %d calls", backend.createTaskCalls)
	}
	if err.Error() != "Please assign this task to a team member." {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestTaskService_Create_ForwardsAllFields(t *testing.T) {
	backend := &stubBackend{}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	in := ports.CreateTaskInput{
		Title:         "quarterly report",
		Description:   "numbers",
		Priority:      domain.PriorityLow,
		DueDate:       "2026-10-01",
		ExpectedHours: floatPtr(4.5),
		AssigneeID:    int64Ptr(5),
	}
	if err := svc.Create(context.Background(), managerSession("boss"), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := backend.lastCreateTask
	if got.Title != in.Title || got.Priority != in.Priority || got.DueDate != in.DueDate {
		t.Errorf("forwarded input differs: %+v", got)
	}
	if got.AssigneeID == nil || *got.AssigneeID != 5 {
		t.Errorf("assignee not forwarded: %v", got.AssigneeID)
	}
}

func TestTaskService_Create_InvalidatesTaskCache(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())
	sess := managerSession("boss")

	// Warm the cache, mutate, then read again: the read must go upstream.
	if _, err := svc.Board(context.Background(), sess); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	err := svc.Create(context.Background(), sess, ports.CreateTaskInput{
		Title: "t", Priority: domain.PriorityLow, DueDate: "2026-09-01", AssigneeID: int64Ptr(5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Board(context.Background(), sess); err != nil {
		t.Fatalf("reread: %v", err)
	}
	if backend.listTasksCalls != 2 {
		t.Errorf("write must invalidate the cached task list, got %d list calls", backend.listTasksCalls)
	}
}

func TestTaskService_Create_BackendFailureKeepsCache(t *testing.T) {
	backend := &stubBackend{
		tasks:    []domain.Task{assignedTask(1, domain.StatusOpen, "")},
		writeErr: errors.New("backend rejected"),
	}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())
	sess := managerSession("boss")

	_, _ = svc.Board(context.Background(), sess)
	_ = svc.Create(context.Background(), sess, ports.CreateTaskInput{
		Title: "t", Priority: domain.PriorityLow, DueDate: "2026-09-01", AssigneeID: int64Ptr(5),
	})
	_, _ = svc.Board(context.Background(), sess)

	if backend.listTasksCalls != 1 {
		t.Errorf("a failed write must not invalidate, got %d list calls", backend.listTasksCalls)
	}
}

// ---------------------------------------------------------------------------
// Assign tests
// ---------------------------------------------------------------------------

func TestTaskService_Assign_NonManagerForbidden(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusOpen, "")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, err := svc.Assign(context.Background(), employeeSession("worker"), 1, 5)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if backend.assignCalls != 0 {
		t.Error("forbidden assign must not reach the backend")
	}
}

func TestTaskService_Assign_RejectsNonOpenTask(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusCompleted, "worker")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, err := svc.Assign(context.Background(), managerSession("boss"), 1, 5)
	if !errors.Is(err, domain.ErrTaskNotOpen) {
		t.Fatalf("expected ErrTaskNotOpen, got %v", err)
	}
}

func TestTaskService_Assign_ReturnsRefetchedDetail(t *testing.T) {
	backend := &stubBackend{
		tasks:   []domain.Task{assignedTask(1, domain.StatusOpen, "")},
		members: []domain.Employee{{ID: 5, User: domain.EmployeeUser{ID: 5, Username: "worker"}}},
	}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())
	sess := managerSession("boss")

	// Warm the cache so the pre-write read is served from it, then swap the
	// backend state to what the write produces.
	if _, err := svc.Board(context.Background(), sess); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	backend.tasks = []domain.Task{assignedTask(1, domain.StatusAssigned, "worker")}

	view, err := svc.Assign(context.Background(), sess, 1, 5)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if backend.assignCalls != 1 {
		t.Errorf("expected 1 assign call, got %d", backend.assignCalls)
	}
	// The answered view must show the post-write server state, not the
	// stale cached copy.
	if view.Task.Status != domain.StatusAssigned {
		t.Errorf("expected re-fetched ASSIGNED state, got %s", view.Task.Status)
	}
	if view.CanAssign {
		t.Error("assign control must be gone after the task leaves OPEN")
	}
}

func TestTaskService_Assign_UnknownTask(t *testing.T) {
	backend := &stubBackend{}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, err := svc.Assign(context.Background(), managerSession("boss"), 42, 5)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus tests
// ---------------------------------------------------------------------------

func TestTaskService_UpdateStatus_NonAssigneeRejected(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusAssigned, "worker")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), employeeSession("bystander"), 1, ports.UpdateTaskStatusInput{
		Status: domain.StatusInProgress, ProgressPercent: 10,
	})
	if !errors.Is(err, domain.ErrNotAssignee) {
		t.Fatalf("expected ErrNotAssignee, got %v", err)
	}
	if backend.updateStatusCalls != 0 {
		t.Error("rejected update must not reach the backend")
	}
}

func TestTaskService_UpdateStatus_AssigneeGetsRefetchedDetail(t *testing.T) {
	backend := &stubBackend{tasks: []domain.Task{assignedTask(1, domain.StatusAssigned, "worker")}}
	svc := NewTaskService(backend, testCache(), zerolog.Nop())
	sess := employeeSession("worker")

	if _, err := svc.Board(context.Background(), sess); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	updated := assignedTask(1, domain.StatusInProgress, "worker")
	updated.Assignments[0].ProgressPercent = 40
	backend.tasks = []domain.Task{updated}

	view, err := svc.UpdateStatus(context.Background(), sess, 1, ports.UpdateTaskStatusInput{
		Status: domain.StatusInProgress, ProgressPercent: 40, Report: "halfway there",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Task.Status != domain.StatusInProgress {
		t.Errorf("expected re-fetched IN_PROGRESS state, got %s", view.Task.Status)
	}
	if view.MyAssignment == nil || view.MyAssignment.ProgressPercent != 40 {
		t.Errorf("expected re-fetched progress, got %+v", view.MyAssignment)
	}
}
