// Package guard decides whether a route may render for the current session.
package guard

import (
	"strings"

	"github.com/hireai/portal/internal/models"
)

type Outcome string

const (
	Allow    Outcome = "allow"
	Redirect Outcome = "redirect"
	// Suspend means the session is still loading and nothing should render.
	Suspend Outcome = "suspend"
)

type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Location string  `json:"location,omitempty"`
}

// Evaluate guards a route subtree reserved for required.
func Evaluate(required models.Role, st models.SessionState) Decision {
	switch {
	case st.Loading:
		return Decision{Outcome: Suspend}
	case !st.Authenticated:
		return Decision{Outcome: Redirect, Location: SignInRoute(required)}
	case st.Role != required:
		return Decision{Outcome: Redirect, Location: HomeRoute(st.Role)}
	default:
		return Decision{Outcome: Allow}
	}
}

func SignInRoute(r models.Role) string {
	if r == models.RoleRecruiter {
		return "/recruiter-signin"
	}
	return "/candidate-signin"
}

// HomeRoute is the landing page of a role, or "/" for an unknown one.
func HomeRoute(r models.Role) string {
	switch r {
	case models.RoleCandidate:
		return "/candidate"
	case models.RoleRecruiter:
		return "/recruiter"
	default:
		return "/"
	}
}

var authRoutes = map[string]struct{}{
	"/":                 {},
	"/candidate-signin": {},
	"/candidate-signup": {},
	"/recruiter-signin": {},
	"/recruiter-signup": {},
}

// Resolve decides where a browser landing on path should go. Signed-in
// sessions skip the sign-in pages; anonymous sessions on a role area are
// sent to that role's sign-in page.
func Resolve(path string, st models.SessionState) Decision {
	if st.Loading {
		return Decision{Outcome: Suspend}
	}
	path = normalize(path)

	if st.Authenticated {
		if _, ok := authRoutes[path]; ok {
			if home := HomeRoute(st.Role); home != path {
				return Decision{Outcome: Redirect, Location: home}
			}
		}
		return Decision{Outcome: Allow}
	}

	if r, ok := areaRole(path); ok {
		return Decision{Outcome: Redirect, Location: SignInRoute(r)}
	}
	return Decision{Outcome: Allow}
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// areaRole matches /candidate and /recruiter subtrees, not the sign-in
// pages that share their prefix.
func areaRole(path string) (models.Role, bool) {
	for _, r := range []models.Role{models.RoleCandidate, models.RoleRecruiter} {
		base := "/" + string(r)
		if path == base || strings.HasPrefix(path, base+"/") {
			return r, true
		}
	}
	return "", false
}
