package guard

import (
	"testing"

	"github.com/hireai/portal/internal/models"
	"github.com/stretchr/testify/assert"
)

func signedIn(r models.Role) models.SessionState {
	return models.SessionState{Token: "t", User: &models.User{ID: "u1", Role: r}, Role: r, Authenticated: true}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		required models.Role
		st       models.SessionState
		want     Decision
	}{
		{"loading", models.RoleCandidate, models.SessionState{Loading: true}, Decision{Outcome: Suspend}},
		{"anonymous candidate", models.RoleCandidate, models.SessionState{}, Decision{Redirect, "/candidate-signin"}},
		{"anonymous recruiter", models.RoleRecruiter, models.SessionState{}, Decision{Redirect, "/recruiter-signin"}},
		{"candidate on recruiter area", models.RoleRecruiter, signedIn(models.RoleCandidate), Decision{Redirect, "/candidate"}},
		{"recruiter on candidate area", models.RoleCandidate, signedIn(models.RoleRecruiter), Decision{Redirect, "/recruiter"}},
		{"unknown role", models.RoleCandidate, signedIn(""), Decision{Redirect, "/"}},
		{"match", models.RoleRecruiter, signedIn(models.RoleRecruiter), Decision{Outcome: Allow}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(tc.required, tc.st))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		path string
		st   models.SessionState
		want Decision
	}{
		{"loading", "/", models.SessionState{Loading: true}, Decision{Outcome: Suspend}},
		{"anonymous landing", "/", models.SessionState{}, Decision{Outcome: Allow}},
		{"anonymous sign-in", "/recruiter-signin", models.SessionState{}, Decision{Outcome: Allow}},
		{"anonymous recruiter area", "/recruiter/my-jobs", models.SessionState{}, Decision{Redirect, "/recruiter-signin"}},
		{"anonymous candidate home", "/candidate/", models.SessionState{}, Decision{Redirect, "/candidate-signin"}},
		{"signed in on landing", "/", signedIn(models.RoleRecruiter), Decision{Redirect, "/recruiter"}},
		{"signed in on sign-up", "/candidate-signup?x=1", signedIn(models.RoleCandidate), Decision{Redirect, "/candidate"}},
		{"signed in elsewhere", "/candidate/jobs", signedIn(models.RoleCandidate), Decision{Outcome: Allow}},
		{"unknown role stays on landing", "/", signedIn(""), Decision{Outcome: Allow}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.path, tc.st))
		})
	}
}
