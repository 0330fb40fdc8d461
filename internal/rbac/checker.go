// Package rbac maps planner roles (student, counselor, admin) to the
// permissions that widen access beyond a user's own records.
package rbac

import "strings"

// Checker answers permission questions against a role policy.
type Checker struct {
	RolePermissions map[string][]string
}

// NewChecker uses RolePermissions when rp is nil.
func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{RolePermissions: rp}
}

// Has reports whether role holds perm. Grants may be "*" or end in "*" to
// cover a whole family, e.g. "service_hours:*".
func (c *Checker) Has(role, perm string) bool {
	for _, grant := range c.RolePermissions[role] {
		if grant == "*" || grant == perm {
			return true
		}
		if family, ok := strings.CutSuffix(grant, "*"); ok && strings.HasPrefix(perm, family) {
			return true
		}
	}
	return false
}
