package service

import "github.com/stwms/workforce-portal/internal/core/domain"

// NavEntry is one navigation link.
type NavEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavSection is an ordered group of navigation links.
type NavSection struct {
	Title   string     `json:"title"`
	Entries []NavEntry `json:"entries"`
}

// Navigation derives the ordered navigation sections visible to a role set.
// Pure function: no I/O, no state, identical output for identical input.
// Overview is always shown; Management requires MANAGER or ADMIN; Admin
// requires ADMIN.
func Navigation(roles domain.RoleSet) []NavSection {
	sections := []NavSection{
		{
			Title: "Overview",
			Entries: []NavEntry{
				{Label: "Dashboard", Path: "/dashboard"},
				{Label: "My Tasks", Path: "/tasks"},
			},
		},
	}

	if roles.IsManager() {
		sections = append(sections, NavSection{
			Title: "Management",
			Entries: []NavEntry{
				{Label: "Manage Tasks", Path: "/tasks/manage"},
				{Label: "Analytics", Path: "/analytics"},
			},
		})
	}

	if roles.IsAdmin() {
		sections = append(sections, NavSection{
			Title: "Admin",
			Entries: []NavEntry{
				{Label: "Users & Teams", Path: "/admin/users"},
				{Label: "Audit Logs", Path: "/admin/audit"},
			},
		})
	}

	return sections
}
