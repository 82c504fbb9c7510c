// Package auth holds the authenticated principal model and the central
// authorization engine every request path routes through.
package auth

import (
	"context"
	"errors"
	"slices"
)

var (
	// ErrUnauthenticated is returned when a request carries missing or
	// invalid credentials. Rejected before authorization is evaluated.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when a valid identity lacks the rights for
	// the requested action. No further detail is surfaced to the caller.
	ErrForbidden = errors.New("forbidden")
)

// Role names recognized by the policy table.
const (
	// RoleAdmin may perform any action on any record regardless of
	// ownership.
	RoleAdmin = "admin"

	// RoleMember is held implicitly by every authenticated principal.
	RoleMember = "member"
)

// PrefixRole converts a role name into its policy-table subject identifier.
const PrefixRole = "role:"

// RoleID returns the policy subject for a role name (e.g. "role:admin").
func RoleID(name string) string {
	return PrefixRole + name
}

// Principal is an authenticated identity with its resolved role set.
// It is immutable for the lifetime of one request: groups come from the
// directory (or a token's claims) and roles are computed once at
// authentication time.
type Principal struct {
	// Subject is the directory username. Portfolio ownership is recorded
	// against this value.
	Subject string

	// Groups lists the directory groups the principal belongs to.
	Groups []string

	// Roles lists resolved role names. This is the source of truth for
	// authorization decisions.
	Roles []string
}

// HasRole reports whether the principal holds the named role.
func (p Principal) HasRole(name string) bool {
	return slices.Contains(p.Roles, name)
}

type principalContextKey struct{}

// WithPrincipal stores the authenticated principal on the context for
// downstream consumers.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
