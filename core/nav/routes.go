package nav

import (
	"strings"

	"github.com/aulaedu/aula/core/user"
)

// Route declares the metadata the guard needs for one logical path. A "{...}"
// segment matches any single non-empty path segment.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
	Role         user.Role // zero value: any authenticated role
}

var Routes = []Route{
	{Path: "/", Name: "home"},
	{Path: "/login", Name: "login"},
	{Path: "/register", Name: "register"},
	{Path: "/forgot-password", Name: "forgot-password"},

	{Path: "/student", Name: "student-dashboard", RequiresAuth: true, Role: user.RoleStudent},
	{Path: "/student/courses", Name: "student-courses", RequiresAuth: true, Role: user.RoleStudent},
	{Path: "/student/courses/{id}", Name: "student-course-details", RequiresAuth: true, Role: user.RoleStudent},
	{Path: "/student/lessons/{id}", Name: "student-lesson-view", RequiresAuth: true, Role: user.RoleStudent},

	{Path: "/trainer", Name: "trainer-dashboard", RequiresAuth: true, Role: user.RoleTrainer},
	{Path: "/trainer/courses", Name: "trainer-courses", RequiresAuth: true, Role: user.RoleTrainer},
	{Path: "/trainer/courses/{id}", Name: "trainer-course-details", RequiresAuth: true, Role: user.RoleTrainer},

	{Path: "/admin", Name: "admin-dashboard", RequiresAuth: true, Role: user.RoleAdmin},
	{Path: "/admin/courses", Name: "admin-courses", RequiresAuth: true, Role: user.RoleAdmin},
	{Path: "/admin/courses/new", Name: "admin-new-course", RequiresAuth: true, Role: user.RoleAdmin},
	{Path: "/admin/courses/{id}/edit", Name: "admin-edit-course", RequiresAuth: true, Role: user.RoleAdmin},
}

// Match resolves a concrete path against the route table. Literal segments win
// over parameter segments when both could match.
func Match(path string) (Route, bool) {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		path = "/"
	}

	var (
		matched Route
		found   bool
		literal bool
	)
	for _, route := range Routes {
		lit, ok := match(route.Path, path)
		if !ok {
			continue
		}
		if !found || (lit && !literal) {
			matched, found, literal = route, true, lit
		}
	}
	return matched, found
}

// match reports whether path satisfies pattern, and whether the match was
// fully literal.
func match(pattern, path string) (literal, ok bool) {
	if pattern == path {
		return true, true
	}

	patSegs := strings.Split(pattern, "/")
	pathSegs := strings.Split(path, "/")
	if len(patSegs) != len(pathSegs) {
		return false, false
	}
	for i, seg := range patSegs {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if pathSegs[i] == "" {
				return false, false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false, false
		}
	}
	return false, true
}

// HomePath maps a role to its dashboard route. An unknown role lands on the
// login page.
func HomePath(role user.Role) string {
	switch role {
	case user.RoleStudent:
		return "/student"
	case user.RoleTrainer:
		return "/trainer"
	case user.RoleAdmin:
		return "/admin"
	}
	return "/login"
}
