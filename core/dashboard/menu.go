package dashboard

import "github.com/doonites/schoolhub/core/school"

type MenuItem struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Path  string   `json:"path"`
	Roles []string `json:"-"` // empty: everyone
}

var menu = []MenuItem{
	{Key: "home", Label: "Dashboard", Path: "/"},
	{Key: "students", Label: "Students", Path: "/students", Roles: []string{school.RoleSuperAdmin, school.RoleAdmin, school.RoleTeacher}},
	{Key: "teachers", Label: "Teachers", Path: "/teachers", Roles: []string{school.RoleSuperAdmin, school.RoleAdmin}},
	{Key: "parents", Label: "Parents", Path: "/parents", Roles: []string{school.RoleSuperAdmin, school.RoleAdmin}},
	{Key: "classes", Label: "Classes", Path: "/classes", Roles: []string{school.RoleSuperAdmin, school.RoleAdmin, school.RoleTeacher}},
	{Key: "messages", Label: "Messages", Path: "/messages", Roles: []string{school.RoleTeacher, school.RoleStudent, school.RoleParent}},
	{Key: "library", Label: "Library", Path: "/library", Roles: []string{school.RoleSuperAdmin, school.RoleLibrarian, school.RoleStudent, school.RoleTeacher}},
	{Key: "fees", Label: "Fees", Path: "/fees", Roles: []string{school.RoleSuperAdmin, school.RoleAdmin, school.RoleParent}},
	{Key: "notifications", Label: "Notifications", Path: "/notifications"},
	{Key: "settings", Label: "Settings", Path: "/settings", Roles: []string{school.RoleSuperAdmin}},
}

func (item MenuItem) visibleTo(role string) bool {
	if len(item.Roles) == 0 {
		return true
	}
	for _, r := range item.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// MenuFor returns the navigation items visible to role, in display order.
func MenuFor(role string) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.visibleTo(role) {
			items = append(items, item)
		}
	}
	return items
}
