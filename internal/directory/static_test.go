package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed() Seed {
	return Seed{
		Users: []SeedUser{
			{Username: "user1", Password: "user1", Groups: []string{"people"}},
			{Username: "admin", Password: "admin123", Groups: []string{"people", "admins"}},
		},
		GroupRoles: map[string][]string{"admins": {"admin"}},
	}
}

func TestStaticDirectory_Authenticate(t *testing.T) {
	dir, err := NewStaticDirectory(testSeed())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		identity, err := dir.Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "admin", identity.Username)
		assert.Equal(t, []string{"people", "admins"}, identity.Groups)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, "user1", "nope")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := dir.Authenticate(ctx, "stranger", "whatever")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestNewStaticDirectory_RejectsBadSeeds(t *testing.T) {
	_, err := NewStaticDirectory(Seed{Users: []SeedUser{{Username: ""}}})
	assert.Error(t, err)

	_, err = NewStaticDirectory(Seed{Users: []SeedUser{
		{Username: "dup", Password: "x"},
		{Username: "dup", Password: "y"},
	}})
	assert.Error(t, err)

	_, err = NewStaticDirectory(Seed{Users: []SeedUser{{Username: "nopass"}}})
	assert.Error(t, err)
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()

	names := make([]string, 0, len(seed.Users))
	for _, u := range seed.Users {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"user1", "user2", "admin"}, names)
	assert.Equal(t, []string{"admin"}, seed.GroupRoles["admins"])

	_, err := NewStaticDirectory(seed)
	assert.NoError(t, err)
}

func TestCachingDirectory(t *testing.T) {
	inner, err := NewStaticDirectory(testSeed())
	require.NoError(t, err)

	counting := &countingDirectory{inner: inner}
	dir := NewCachingDirectory(counting, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		identity, err := dir.Authenticate(ctx, "user1", "user1")
		require.NoError(t, err)
		assert.Equal(t, "user1", identity.Username)
	}
	assert.Equal(t, 1, counting.calls, "verified credentials should be served from cache")

	// Failures bypass the cache every time.
	for i := 0; i < 2; i++ {
		_, err := dir.Authenticate(ctx, "user1", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
	}
	assert.Equal(t, 3, counting.calls)
}

type countingDirectory struct {
	inner Directory
	calls int
}

func (d *countingDirectory) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	d.calls++
	return d.inner.Authenticate(ctx, username, password)
}
