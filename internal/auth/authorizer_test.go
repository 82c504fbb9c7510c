package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthorizer(t *testing.T) *Authorizer {
	t.Helper()
	a, err := NewAuthorizer()
	require.NoError(t, err)
	return a
}

func TestAuthorize_RuleTable(t *testing.T) {
	a := newTestAuthorizer(t)

	admin := Principal{Subject: "admin", Roles: []string{RoleMember, RoleAdmin}}
	member := Principal{Subject: "user1", Roles: []string{RoleMember}}
	noRoles := Principal{Subject: "ghost"}

	tests := []struct {
		name    string
		p       Principal
		obj     string
		act     string
		allowed bool
	}{
		{"admin can update portfolios", admin, ObjectPortfolio, PortfolioUpdate, true},
		{"admin can delete portfolios", admin, ObjectPortfolio, PortfolioDelete, true},
		{"admin can create positions", admin, ObjectPosition, PositionCreate, true},
		{"member can create portfolios", member, ObjectPortfolio, PortfolioCreate, true},
		{"member can read portfolios", member, ObjectPortfolio, PortfolioRead, true},
		{"member can list portfolios", member, ObjectPortfolio, PortfolioList, true},
		{"member can read positions", member, ObjectPosition, PositionRead, true},
		{"member can list positions", member, ObjectPosition, PositionList, true},
		{"member cannot update portfolios", member, ObjectPortfolio, PortfolioUpdate, false},
		{"member cannot delete portfolios", member, ObjectPortfolio, PortfolioDelete, false},
		{"member cannot create positions", member, ObjectPosition, PositionCreate, false},
		{"member cannot update positions", member, ObjectPosition, PositionUpdate, false},
		{"member cannot delete positions", member, ObjectPosition, PositionDelete, false},
		{"no roles is denied everything", noRoles, ObjectPosition, PositionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authorize(tt.p, tt.obj, tt.act)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeOwned_OwnershipScope(t *testing.T) {
	a := newTestAuthorizer(t)

	admin := Principal{Subject: "admin", Roles: []string{RoleMember, RoleAdmin}}
	user1 := Principal{Subject: "user1", Roles: []string{RoleMember}}

	t.Run("owner may read own portfolio", func(t *testing.T) {
		assert.NoError(t, a.AuthorizeOwned(user1, ObjectPortfolio, PortfolioRead, "user1"))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := a.AuthorizeOwned(user1, ObjectPortfolio, PortfolioRead, "user2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		assert.NoError(t, a.AuthorizeOwned(admin, ObjectPortfolio, PortfolioRead, "user2"))
	})

	t.Run("ownership never rescues a missing role grant", func(t *testing.T) {
		err := a.AuthorizeOwned(user1, ObjectPortfolio, PortfolioUpdate, "user1")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestCanSee_ListFilter(t *testing.T) {
	a := newTestAuthorizer(t)

	admin := Principal{Subject: "admin", Roles: []string{RoleMember, RoleAdmin}}
	user1 := Principal{Subject: "user1", Roles: []string{RoleMember}}

	assert.True(t, a.CanSee(admin, "user2"))
	assert.True(t, a.CanSee(user1, "user1"))
	assert.False(t, a.CanSee(user1, "user2"))
}
