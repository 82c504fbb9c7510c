package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("test-secret"), "folio", time.Minute)
	require.NoError(t, err)

	token, expiry, err := issuer.Issue("user1", []string{"people"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiry, 5*time.Second)

	subject, groups, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user1", subject)
	assert.Equal(t, []string{"people"}, groups)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("secret-a"), "folio", time.Minute)
	require.NoError(t, err)
	other, err := NewTokenIssuer([]byte("secret-b"), "folio", time.Minute)
	require.NoError(t, err)

	token, _, err := issuer.Issue("user1", nil)
	require.NoError(t, err)

	_, _, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("test-secret"), "folio", time.Minute)
	require.NoError(t, err)
	issuer.ttl = -time.Minute

	token, _, err := issuer.Issue("user1", nil)
	require.NoError(t, err)

	_, _, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenIssuer_RejectsWrongIssuer(t *testing.T) {
	a, err := NewTokenIssuer([]byte("test-secret"), "folio", time.Minute)
	require.NoError(t, err)
	b, err := NewTokenIssuer([]byte("test-secret"), "someone-else", time.Minute)
	require.NoError(t, err)

	token, _, err := b.Issue("user1", nil)
	require.NoError(t, err)

	_, _, err = a.Parse(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(nil, "folio", time.Minute)
	assert.Error(t, err)
}
