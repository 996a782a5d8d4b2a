package service

import (
	"reflect"
	"testing"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

func sectionTitles(sections []NavSection) []string {
	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	return titles
}

func TestNavigation_Employee(t *testing.T) {
	sections := Navigation(domain.RoleSet{domain.RoleEmployee})

	if got := sectionTitles(sections); !reflect.DeepEqual(got, []string{"Overview"}) {
		t.Fatalf("employee sections: %v", got)
	}
	entries := sections[0].Entries
	if len(entries) != 2 || entries[0].Path != "/dashboard" || entries[1].Path != "/tasks" {
		t.Errorf("overview entries wrong: %+v", entries)
	}
}

func TestNavigation_Manager(t *testing.T) {
	sections := Navigation(domain.RoleSet{domain.RoleManager})

	want := []string{"Overview", "Management"}
	if got := sectionTitles(sections); !reflect.DeepEqual(got, want) {
		t.Fatalf("manager sections: %v, want %v", got, want)
	}
	mgmt := sections[1].Entries
	if len(mgmt) != 2 || mgmt[0].Path != "/tasks/manage" || mgmt[1].Path != "/analytics" {
		t.Errorf("management entries wrong: %+v", mgmt)
	}
}

func TestNavigation_Admin(t *testing.T) {
	sections := Navigation(domain.RoleSet{domain.RoleAdmin})

	// Admin counts as manager, so all three sections appear, in order.
	want := []string{"Overview", "Management", "Admin"}
	if got := sectionTitles(sections); !reflect.DeepEqual(got, want) {
		t.Fatalf("admin sections: %v, want %v", got, want)
	}
	adm := sections[2].Entries
	if len(adm) != 2 || adm[0].Path != "/admin/users" || adm[1].Path != "/admin/audit" {
		t.Errorf("admin entries wrong: %+v", adm)
	}
}

func TestNavigation_NoRoles(t *testing.T) {
	sections := Navigation(nil)
	if got := sectionTitles(sections); !reflect.DeepEqual(got, []string{"Overview"}) {
		t.Fatalf("roleless sections: %v", got)
	}
}

func TestNavigation_Deterministic(t *testing.T) {
	roles := domain.RoleSet{domain.RoleManager, domain.RoleAdmin}
	first := Navigation(roles)
	second := Navigation(roles)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must yield identical navigation")
	}
}
