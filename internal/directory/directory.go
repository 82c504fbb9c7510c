// Package directory resolves usernames and passwords against a user
// directory and maps directory groups onto authorization roles. The
// record services never see this package: it exists only at the request
// boundary, so the directory backend (static seed, database, or anything
// else implementing Directory) is freely interchangeable.
package directory

import (
	"context"
	"errors"
)

// ErrBadCredentials is returned for unknown users and wrong passwords
// alike; callers must not learn which.
var ErrBadCredentials = errors.New("invalid credentials")

// Identity is the directory's answer for a successful authentication.
type Identity struct {
	// Username is the stable principal subject.
	Username string

	// Groups lists the directory groups the user belongs to.
	Groups []string
}

// Directory authenticates a username/password pair.
//
// Implementations:
//   - StaticDirectory: seeded from an embedded or file-supplied TOML seed
//   - DBDirectory: users and group memberships in SQLite or PostgreSQL
//   - CachingDirectory: decorator that caches recent successes
type Directory interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}
