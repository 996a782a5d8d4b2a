package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stwms/workforce-portal/internal/api/middleware"
	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// TaskHandler serves the task board, task detail and task mutations.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type boardResponse struct {
	Tasks     []domain.Task `json:"tasks"`
	CanCreate bool          `json:"canCreate"`
}

// Board returns the viewer's task collection.
//
// @Summary      Task board
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  boardResponse
// @Router       /tasks [get]
func (h *TaskHandler) Board(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	view, err := h.tasks.Board(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, boardResponse{Tasks: view.Tasks, CanCreate: view.CanCreate})
}

type taskDetailResponse struct {
	Task         domain.Task        `json:"task"`
	TeamMembers  []domain.Employee  `json:"teamMembers,omitempty"`
	CanAssign    bool               `json:"canAssign"`
	CanUpdate    bool               `json:"canUpdate"`
	MyAssignment *domain.Assignment `json:"myAssignment,omitempty"`
}

func toTaskDetailResponse(view ports.TaskDetailView) taskDetailResponse {
	return taskDetailResponse{
		Task:         view.Task,
		TeamMembers:  view.TeamMembers,
		CanAssign:    view.CanAssign,
		CanUpdate:    view.CanUpdate,
		MyAssignment: view.MyAssignment,
	}
}

// Detail returns one task with the viewer's capabilities.
//
// @Summary      Task detail
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  taskDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Detail(c echo.Context) error {
	taskID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	sess := middleware.CurrentSession(c)
	view, err := h.tasks.Detail(c.Request().Context(), sess, taskID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskDetailResponse(view))
}

type createTaskRequest struct {
	Title         string   `json:"title"         validate:"required"`
	Description   string   `json:"description"`
	Priority      string   `json:"priority"      validate:"required,oneof=LOW MEDIUM HIGH"`
	DueDate       string   `json:"dueDate"       validate:"required,datetime=2006-01-02"`
	ExpectedHours *float64 `json:"expectedHours" validate:"omitempty,gt=0"`
	AssigneeID    *int64   `json:"assigneeId"    validate:"omitempty,gt=0"`
}

// Create posts a new task. A manager without an assignee is rejected before
// any upstream call.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   "task created"
// @Failure      422   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	sess := middleware.CurrentSession(c)
	err := h.tasks.Create(c.Request().Context(), sess, ports.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      domain.TaskPriority(req.Priority),
		DueDate:       req.DueDate,
		ExpectedHours: req.ExpectedHours,
		AssigneeID:    req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Assign places one employee on an OPEN task and responds with the
// re-fetched detail view.
//
// @Summary      Assign a task
// @Tags         tasks
// @Produce      json
// @Param        id          path      int  true  "Task ID"
// @Param        employeeID  path      int  true  "Employee ID"
// @Success      200  {object}  taskDetailResponse
// @Failure      409  {object}  map[string]string
// @Router       /tasks/{id}/assign/{employeeID} [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	taskID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	employeeID, err := idParam(c, "employeeID")
	if err != nil {
		return err
	}

	sess := middleware.CurrentSession(c)
	view, err := h.tasks.Assign(c.Request().Context(), sess, taskID, employeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskDetailResponse(view))
}

type updateStatusRequest struct {
	Status          string `json:"status"          validate:"required,oneof=ASSIGNED IN_PROGRESS COMPLETED"`
	ProgressPercent int    `json:"progressPercent" validate:"gte=0,lte=100"`
	Report          string `json:"report"`
}

// UpdateStatus posts the assignee's progress and responds with the
// re-fetched detail view.
//
// @Summary      Update task status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Task ID"
// @Param        body  body      updateStatusRequest  true  "Status update"
// @Success      200   {object}  taskDetailResponse
// @Failure      403   {object}  map[string]string
// @Router       /tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	taskID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	sess := middleware.CurrentSession(c)
	view, err := h.tasks.UpdateStatus(c.Request().Context(), sess, taskID, ports.UpdateTaskStatusInput{
		Status:          domain.TaskStatus(req.Status),
		ProgressPercent: req.ProgressPercent,
		Report:          req.Report,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskDetailResponse(view))
}
