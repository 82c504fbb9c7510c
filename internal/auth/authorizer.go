package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var casbinModel string

// defaultPolicies is the complete rule table. First matching allow wins;
// anything not granted here is denied. The admin wildcard implements the
// administrator override; the member rows grant portfolio creation and
// reads plus open position reads. Portfolio mutations and position
// mutations appear only under role:admin.
var defaultPolicies = [][]string{
	{RoleID(RoleAdmin), ObjectAll, "*"},
	{RoleID(RoleMember), ObjectPortfolio, PortfolioCreate},
	{RoleID(RoleMember), ObjectPortfolio, PortfolioRead},
	{RoleID(RoleMember), ObjectPortfolio, PortfolioList},
	{RoleID(RoleMember), ObjectPosition, PositionRead},
	{RoleID(RoleMember), ObjectPosition, PositionList},
}

// Authorizer is the pure decision engine mapping (principal, action,
// target ownership) to allow or deny. It wraps a casbin enforcer loaded
// with the embedded model and the static policy table; evaluation never
// mutates enforcer state, so concurrent use is safe.
type Authorizer struct {
	enforcer casbin.IEnforcer
}

// NewAuthorizer builds the engine from the embedded model and seeds the
// policy table.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("seed casbin policies: %w", err)
	}

	return &Authorizer{enforcer: enforcer}, nil
}

// Allows reports whether any of the principal's roles grants the action on
// the object type. A principal with no roles is always denied.
func (a *Authorizer) Allows(p Principal, obj, act string) (bool, error) {
	for _, role := range p.Roles {
		allowed, err := a.enforcer.Enforce(RoleID(role), obj, act)
		if err != nil {
			return false, fmt.Errorf("enforce %s for role %s: %w", act, role, err)
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// Authorize evaluates a role-gated action and returns ErrForbidden on
// denial. Used for every action whose grant does not depend on record
// ownership.
func (a *Authorizer) Authorize(p Principal, obj, act string) error {
	allowed, err := a.Allows(p, obj, act)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

// AuthorizeOwned evaluates an ownership-scoped action against the target
// record's owner. Admins bypass the ownership check entirely; everyone
// else must both hold a granting role and be the recorded owner.
func (a *Authorizer) AuthorizeOwned(p Principal, obj, act, owner string) error {
	if err := a.Authorize(p, obj, act); err != nil {
		return err
	}
	if p.HasRole(RoleAdmin) {
		return nil
	}
	if owner != p.Subject {
		return ErrForbidden
	}
	return nil
}

// CanSee is the row-level visibility filter for portfolio lists: admins
// see every record, other principals only records they own.
func (a *Authorizer) CanSee(p Principal, owner string) bool {
	return p.HasRole(RoleAdmin) || owner == p.Subject
}
