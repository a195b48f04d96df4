package enum

// Role is the privilege level of the person at the desk
type Role string

const (
	RoleSale  Role = "SALE"
	RoleOwner Role = "OWNER"
)

// ParseRole maps unknown values to RoleSale.
func ParseRole(s string) Role {
	if Role(s) == RoleOwner {
		return RoleOwner
	}
	return RoleSale
}

// IsOwner reports whether r may see costs and perform privileged actions.
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

func (r Role) String() string {
	return string(r)
}
