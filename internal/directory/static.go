package directory

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

//go:embed seed.toml
var defaultSeed []byte

// Seed is the parsed TOML seed document. Users may carry either a
// plaintext password (hashed at load time, for development seeds) or a
// pre-computed bcrypt hash.
type Seed struct {
	Users      []SeedUser          `toml:"users"`
	GroupRoles map[string][]string `toml:"group_roles"`
}

// SeedUser is one directory entry in a seed file.
type SeedUser struct {
	Username     string   `toml:"username"`
	Password     string   `toml:"password"`
	PasswordHash string   `toml:"password_hash"`
	Groups       []string `toml:"groups"`
}

// LoadSeed parses a seed file from disk.
func LoadSeed(path string) (Seed, error) {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return Seed{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return seed, nil
}

// DefaultSeed returns the embedded development seed.
func DefaultSeed() Seed {
	var seed Seed
	// The embedded seed is fixed at build time; a decode failure is a
	// programming error.
	if err := toml.Unmarshal(defaultSeed, &seed); err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return seed
}

type staticUser struct {
	passwordHash []byte
	groups       []string
}

// StaticDirectory is an in-memory directory built from a seed. Entries are
// immutable after construction, so lookups need no locking.
type StaticDirectory struct {
	users map[string]staticUser
}

// NewStaticDirectory builds a directory from the seed, hashing any
// plaintext passwords with bcrypt.
func NewStaticDirectory(seed Seed) (*StaticDirectory, error) {
	users := make(map[string]staticUser, len(seed.Users))
	for _, u := range seed.Users {
		if u.Username == "" {
			return nil, fmt.Errorf("seed user with empty username")
		}
		if _, exists := users[u.Username]; exists {
			return nil, fmt.Errorf("duplicate seed user %q", u.Username)
		}

		var hash []byte
		switch {
		case u.PasswordHash != "":
			hash = []byte(u.PasswordHash)
		case u.Password != "":
			var err error
			hash, err = bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hash password for %q: %w", u.Username, err)
			}
		default:
			return nil, fmt.Errorf("seed user %q has neither password nor password_hash", u.Username)
		}

		groups := make([]string, len(u.Groups))
		copy(groups, u.Groups)
		users[u.Username] = staticUser{passwordHash: hash, groups: groups}
	}
	return &StaticDirectory{users: users}, nil
}

// Authenticate verifies the password against the stored bcrypt hash.
func (d *StaticDirectory) Authenticate(_ context.Context, username, password string) (Identity, error) {
	u, ok := d.users[username]
	if !ok {
		return Identity{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return Identity{}, ErrBadCredentials
	}

	groups := make([]string, len(u.groups))
	copy(groups, u.groups)
	return Identity{Username: username, Groups: groups}, nil
}
