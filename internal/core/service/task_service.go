package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// TaskService backs the task board, task detail and task mutation flows.
// Reads go through the session-scoped view cache; every write invalidates
// the task resource and reconciles by re-fetching, never by patching the
// cached copy.
type TaskService struct {
	upstream ports.UpstreamClient
	cache    *ViewCache
	log      zerolog.Logger
}

func NewTaskService(upstream ports.UpstreamClient, cache *ViewCache, log zerolog.Logger) *TaskService {
	return &TaskService{
		upstream: upstream,
		cache:    cache,
		log:      log.With().Str("component", "tasks").Logger(),
	}
}

func (s *TaskService) fetchTasks(ctx context.Context, sess *domain.Session) ([]domain.Task, error) {
	if tasks, ok := cacheGet[[]domain.Task](s.cache, sess.ID, ResourceTasks); ok {
		return tasks, nil
	}
	tasks, err := s.upstream.ListTasks(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	cacheSet(s.cache, sess.ID, ResourceTasks, tasks)
	return tasks, nil
}

func (s *TaskService) fetchTeamMembers(ctx context.Context, sess *domain.Session) ([]domain.Employee, error) {
	if members, ok := cacheGet[[]domain.Employee](s.cache, sess.ID, ResourceTeamMembers); ok {
		return members, nil
	}
	members, err := s.upstream.TeamMembers(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	cacheSet(s.cache, sess.ID, ResourceTeamMembers, members)
	return members, nil
}

// Board returns the task list view. The create control is shown to managers
// and admins only; hiding it is a UX hint, not a security boundary.
func (s *TaskService) Board(ctx context.Context, sess *domain.Session) (ports.BoardView, error) {
	tasks, err := s.fetchTasks(ctx, sess)
	if err != nil {
		return ports.BoardView{}, err
	}
	return ports.BoardView{
		Tasks:     tasks,
		CanCreate: sess.Identity.Roles.IsManager(),
	}, nil
}

// Detail returns one task plus the viewer's capabilities. For managers the
// assignable roster is fetched concurrently with the task list; a roster
// failure degrades to an empty list rather than failing the whole view.
func (s *TaskService) Detail(ctx context.Context, sess *domain.Session, taskID int64) (ports.TaskDetailView, error) {
	var (
		wg         sync.WaitGroup
		tasks      []domain.Task
		tasksErr   error
		members    []domain.Employee
		membersErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		tasks, tasksErr = s.fetchTasks(ctx, sess)
	}()

	isManager := sess.Identity.Roles.IsManager()
	if isManager {
		wg.Add(1)
		go func() {
			defer wg.Done()
			members, membersErr = s.fetchTeamMembers(ctx, sess)
		}()
	}
	wg.Wait()

	if tasksErr != nil {
		return ports.TaskDetailView{}, tasksErr
	}
	if membersErr != nil {
		s.log.Warn().Err(membersErr).Msg("team member fetch failed, rendering without roster")
		members = nil
	}

	task, ok := findTask(tasks, taskID)
	if !ok {
		return ports.TaskDetailView{}, domain.ErrTaskNotFound
	}

	view := ports.TaskDetailView{
		Task:        task,
		TeamMembers: members,
		CanAssign:   isManager && task.Status == domain.StatusOpen,
		CanUpdate:   task.AssignedTo(sess.Identity.Username),
	}
	if mine, ok := task.AssignmentFor(sess.Identity.Username); ok {
		view.MyAssignment = &mine
	}
	return view, nil
}

// Create posts a new task. A manager submitting without an assignee is
// rejected locally before any network call.
func (s *TaskService) Create(ctx context.Context, sess *domain.Session, in ports.CreateTaskInput) error {
	if sess.Identity.Roles.IsManager() && in.AssigneeID == nil {
		return domain.ErrAssigneeRequired
	}
	if err := s.upstream.CreateTask(ctx, sess.Token, in); err != nil {
		return err
	}
	s.cache.Invalidate(sess.ID, ResourceTasks)
	return nil
}

// Assign puts one employee on an OPEN task and answers with the re-fetched
// detail view. The manager/OPEN checks mirror what the UI shows; the backend
// still enforces them on its side.
func (s *TaskService) Assign(ctx context.Context, sess *domain.Session, taskID, employeeID int64) (ports.TaskDetailView, error) {
	if !sess.Identity.Roles.IsManager() {
		return ports.TaskDetailView{}, domain.ErrForbidden
	}

	tasks, err := s.fetchTasks(ctx, sess)
	if err != nil {
		return ports.TaskDetailView{}, err
	}
	task, ok := findTask(tasks, taskID)
	if !ok {
		return ports.TaskDetailView{}, domain.ErrTaskNotFound
	}
	if task.Status != domain.StatusOpen {
		return ports.TaskDetailView{}, domain.ErrTaskNotOpen
	}

	if err := s.upstream.AssignTask(ctx, sess.Token, taskID, employeeID); err != nil {
		return ports.TaskDetailView{}, err
	}
	s.cache.Invalidate(sess.ID, ResourceTasks)
	return s.Detail(ctx, sess, taskID)
}

// UpdateStatus posts the viewer's progress on a task they are assigned to
// and answers with the re-fetched detail view.
func (s *TaskService) UpdateStatus(ctx context.Context, sess *domain.Session, taskID int64, in ports.UpdateTaskStatusInput) (ports.TaskDetailView, error) {
	tasks, err := s.fetchTasks(ctx, sess)
	if err != nil {
		return ports.TaskDetailView{}, err
	}
	task, ok := findTask(tasks, taskID)
	if !ok {
		return ports.TaskDetailView{}, domain.ErrTaskNotFound
	}
	if !task.AssignedTo(sess.Identity.Username) {
		return ports.TaskDetailView{}, domain.ErrNotAssignee
	}

	if err := s.upstream.UpdateTaskStatus(ctx, sess.Token, taskID, in); err != nil {
		return ports.TaskDetailView{}, err
	}
	s.cache.Invalidate(sess.ID, ResourceTasks)
	return s.Detail(ctx, sess, taskID)
}

func findTask(tasks []domain.Task, id int64) (domain.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}
