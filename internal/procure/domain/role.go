package domain

// Role is the platform-level role of a user account. New registrations
// start as RolePending and only become active once an Admin assigns a
// real role.
type Role string

const (
	RolePending  Role = "Pending"
	RoleSupplier Role = "Supplier"
	RoleOperator Role = "Operator"
	RoleAuditor  Role = "Auditor"
	RoleAdmin    Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePending, RoleSupplier, RoleOperator, RoleAuditor, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether r is a back-office role with visibility into all
// bids once a project has closed.
func (r Role) Staff() bool {
	switch r {
	case RoleOperator, RoleAuditor, RoleAdmin:
		return true
	}
	return false
}

// Scopes maps a role to the token scopes it is granted at login. The HTTP
// layer gates endpoints coarsely on these; services re-check the
// fine-grained guards (creator vs auditor etc.) themselves.
func (r Role) Scopes() []string {
	switch r {
	case RoleSupplier:
		return []string{"profile:read", "projects:read", "bids:write"}
	case RoleOperator:
		return []string{"profile:read", "projects:read", "projects:write", "projects:open"}
	case RoleAuditor:
		return []string{"profile:read", "projects:read", "projects:open"}
	case RoleAdmin:
		return []string{
			"profile:read", "projects:read", "projects:write", "projects:open",
			"projects:cancel", "admin:read", "admin:write",
		}
	default:
		return nil
	}
}
