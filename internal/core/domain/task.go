package domain

// TaskStatus represents the lifecycle state of a task as reported by the
// backend. The portal never invents states; it only displays and forwards them.
type TaskStatus string

const (
	StatusOpen       TaskStatus = "OPEN"
	StatusAssigned   TaskStatus = "ASSIGNED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// TaskPriority is the backend's priority scale.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Assignment is a single employee's stake in a task. It has no lifecycle of
// its own on the portal side; it always travels nested under its task.
type Assignment struct {
	ID              int64    `json:"id"`
	Employee        Employee `json:"employee"`
	ProgressPercent int      `json:"progressPercent"`
	Report          string   `json:"report"`
}

// Task is the backend-owned aggregate the task views render. Copies held by
// the portal are soft caches, discarded and re-read after every mutation.
// DueDate is an opaque yyyy-mm-dd string owned by the backend.
type Task struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	DueDate       string       `json:"dueDate"`
	ExpectedHours float64      `json:"expectedHours,omitempty"`
	Assignments   []Assignment `json:"assignments,omitempty"`
}

// AssignedTo reports whether the given username holds an assignment on the
// task. Used for the viewer capability check on the detail view.
func (t *Task) AssignedTo(username string) bool {
	for _, a := range t.Assignments {
		if a.Employee.User.Username == username {
			return true
		}
	}
	return false
}

// AssignmentFor returns the assignment held by username, if any.
func (t *Task) AssignmentFor(username string) (Assignment, bool) {
	for _, a := range t.Assignments {
		if a.Employee.User.Username == username {
			return a, true
		}
	}
	return Assignment{}, false
}
