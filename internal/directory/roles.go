package directory

import (
	"sort"
	"sync/atomic"

	"github.com/folioworks/folio/internal/auth"
)

// RoleMapper resolves directory groups to role names using an immutable
// snapshot held in an atomic.Value. Reads are lock-free; Replace builds a
// fresh map and swaps the pointer, so readers observe either the old or
// the new mapping, never a partial one.
type RoleMapper struct {
	snapshot atomic.Value // holds map[string][]string
}

// NewRoleMapper constructs a mapper from group→roles assignments. A nil
// map yields a mapper that grants only the implicit member role.
func NewRoleMapper(mappings map[string][]string) *RoleMapper {
	m := &RoleMapper{}
	m.Replace(mappings)
	return m
}

// Replace swaps in a new group→roles mapping.
func (m *RoleMapper) Replace(mappings map[string][]string) {
	copied := make(map[string][]string, len(mappings))
	for group, roles := range mappings {
		copied[group] = append([]string(nil), roles...)
	}
	m.snapshot.Store(copied)
}

// RolesFor computes the deduplicated union of roles granted by the given
// groups. Every authenticated principal additionally holds the implicit
// member role, so the result is never empty.
func (m *RoleMapper) RolesFor(groups []string) []string {
	mappings := m.snapshot.Load().(map[string][]string)

	roleSet := map[string]struct{}{auth.RoleMember: {}}
	for _, group := range groups {
		for _, role := range mappings[group] {
			roleSet[role] = struct{}{}
		}
	}

	roles := make([]string, 0, len(roleSet))
	for role := range roleSet {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
