// Package middleware provides the HTTP middleware chain: authentication
// and request logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/directory"
)

// AuthnDependencies bundles the collaborators the authentication
// middleware needs to turn credentials into a Principal.
type AuthnDependencies struct {
	// Directory authenticates Basic credentials.
	Directory directory.Directory

	// Roles resolves directory groups to role names.
	Roles *directory.RoleMapper

	// Tokens verifies Bearer tokens issued at login. Optional; when nil,
	// only Basic credentials are accepted.
	Tokens *auth.TokenIssuer
}

// NewAuthn builds middleware that authenticates every request it wraps.
// Basic credentials are resolved against the directory, Bearer tokens
// against the token issuer; either way the resolved identity's groups are
// mapped to roles and an immutable Principal is stored on the context.
// Requests without valid credentials are rejected with 401 before any
// handler runs; authorization is never evaluated for them.
func NewAuthn(deps AuthnDependencies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			var identity directory.Identity
			switch {
			case strings.HasPrefix(header, "Basic "):
				username, password, ok := r.BasicAuth()
				if !ok {
					unauthenticated(w)
					return
				}
				var err error
				identity, err = deps.Directory.Authenticate(r.Context(), username, password)
				if err != nil {
					unauthenticated(w)
					return
				}

			case strings.HasPrefix(header, "Bearer "):
				if deps.Tokens == nil {
					unauthenticated(w)
					return
				}
				subject, groups, err := deps.Tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
				if err != nil {
					unauthenticated(w)
					return
				}
				identity = directory.Identity{Username: subject, Groups: groups}

			default:
				unauthenticated(w)
				return
			}

			principal := auth.Principal{
				Subject: identity.Username,
				Groups:  identity.Groups,
				Roles:   deps.Roles.RolesFor(identity.Groups),
			}

			ctx := auth.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="folio"`)
	http.Error(w, "unauthenticated", http.StatusUnauthorized)
}
