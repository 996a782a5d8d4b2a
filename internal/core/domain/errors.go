package domain

import "errors"

var (
	// ErrNoSession means no usable session exists for the caller: missing,
	// expired or malformed. The route guard turns it into a login redirect.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidCredentials is the backend rejecting a login or signup payload.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is a role mismatch. Client-side checks producing it are
	// UX-only; the backend remains the enforcement point.
	ErrForbidden = errors.New("access forbidden")

	// ErrTaskNotFound means the requested task is absent from the backend's
	// task list for this viewer.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAssigneeRequired is the local pre-flight rejection of a manager
	// creating a task without an assignee. No upstream call is made.
	ErrAssigneeRequired = errors.New("Please assign this task to a team member.")

	// ErrTaskNotOpen guards assignment: only OPEN tasks accept one.
	ErrTaskNotOpen = errors.New("task is not open for assignment")

	// ErrNotAssignee guards status updates: only a current assignee may post
	// progress on a task.
	ErrNotAssignee = errors.New("only an assignee may update this task")

	// ErrUserExists is the backend refusing a duplicate signup.
	ErrUserExists = errors.New("user already exists")

	// ErrUpstream wraps transport or 5xx failures from the backend.
	ErrUpstream = errors.New("upstream request failed")
)
