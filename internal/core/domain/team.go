package domain

// EmployeeUser is the slim user record the backend nests inside an employee.
type EmployeeUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Employee is a workforce member as exposed by the team-member and team
// endpoints. Distinct from Identity and from the admin User view: the backend
// serves each through different endpoints with different field sets, and the
// portal deliberately does not unify them.
type Employee struct {
	ID          int64        `json:"id"`
	User        EmployeeUser `json:"user"`
	Designation string       `json:"designation,omitempty"`
	JobTitle    string       `json:"jobTitle,omitempty"`
}

// Role is a named role tag as the admin endpoints return it.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the admin-view user record (GET /api/admin/users).
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles"`
}

// RoleNames flattens the user's roles into a RoleSet.
func (u *User) RoleNames() RoleSet {
	names := make(RoleSet, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Team groups employees under an optional manager.
type Team struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Manager   *EmployeeUser `json:"manager,omitempty"`
	Employees []Employee    `json:"employees,omitempty"`
}

// TeamProgress is the backend's aggregate for one team.
type TeamProgress struct {
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// DashboardStats is the backend's global task aggregate. The portal treats it
// as authoritative and never recomputes these three numbers from a task list.
type DashboardStats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
}

// AuditEntry is one row of the backend audit trail.
type AuditEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Username  string `json:"username"`
	Details   string `json:"details,omitempty"`
}
