package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hireai/portal/internal/models"
)

// The portal never holds the signing key, so tokens are only inspected,
// not verified. The backend still rejects a forged token.
type tokenClaims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func parseClaims(tok string) (*tokenClaims, bool) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// expired reports whether tok is a JWT whose exp lies before now. Opaque
// tokens never expire here.
func expired(tok string, now time.Time) bool {
	claims, ok := parseClaims(tok)
	if !ok || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

func tokenRole(tok string) models.Role {
	claims, ok := parseClaims(tok)
	if !ok {
		return ""
	}
	return models.ParseRole(claims.Role)
}

// userFromClaims builds the user record of a provider sign-in, where the
// token is all the portal receives. Providers only sign in recruiters, so a
// missing role means recruiter.
func userFromClaims(c *tokenClaims) models.User {
	name, _, _ := strings.Cut(c.Email, "@")
	role := models.ParseRole(c.Role)
	if role == "" {
		role = models.RoleRecruiter
	}
	return models.User{
		ID:       c.Subject,
		Email:    c.Email,
		Username: name,
		FullName: name,
		IsActive: true,
		Role:     role,
	}
}
