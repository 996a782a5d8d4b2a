package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// ListTasks fetches the viewer's task collection. The backend scopes the list
// to the token's principal; the portal does no further filtering.
func (c *Client) ListTasks(ctx context.Context, token string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", token, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// createTaskRequest uses pointers for the optional fields so absent values
// are omitted from the payload rather than sent as zeroes.
type createTaskRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      string   `json:"priority"`
	DueDate       string   `json:"dueDate"`
	ExpectedHours *float64 `json:"expectedHours,omitempty"`
	AssigneeID    *int64   `json:"assigneeId,omitempty"`
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, token string, in ports.CreateTaskInput) error {
	return c.do(ctx, http.MethodPost, "/api/tasks", token, createTaskRequest{
		Title:         in.Title,
		Description:   in.Description,
		Priority:      string(in.Priority),
		DueDate:       in.DueDate,
		ExpectedHours: in.ExpectedHours,
		AssigneeID:    in.AssigneeID,
	}, nil)
}

// TeamMembers fetches the employees a manager may assign tasks to.
func (c *Client) TeamMembers(ctx context.Context, token string) ([]domain.Employee, error) {
	var members []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/api/tasks/team-members", token, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AssignTask assigns one employee to one task.
func (c *Client) AssignTask(ctx context.Context, token string, taskID, employeeID int64) error {
	path := fmt.Sprintf("/api/tasks/%d/assign/%d", taskID, employeeID)
	return c.do(ctx, http.MethodPost, path, token, nil, nil)
}

type updateStatusRequest struct {
	Status          string `json:"status"`
	ProgressPercent int    `json:"progressPercent"`
	Report          string `json:"report"`
}

// UpdateTaskStatus posts an assignee's status, progress and report.
func (c *Client) UpdateTaskStatus(ctx context.Context, token string, taskID int64, in ports.UpdateTaskStatusInput) error {
	path := fmt.Sprintf("/api/tasks/%d/status", taskID)
	return c.do(ctx, http.MethodPut, path, token, updateStatusRequest{
		Status:          string(in.Status),
		ProgressPercent: in.ProgressPercent,
		Report:          in.Report,
	}, nil)
}
