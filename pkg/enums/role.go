package enums

import "fmt"

// Role represents the capability tier of an authenticated operator.
// Tiers are strictly ordered: admin ⊇ manager ⊇ cashier.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

var validRoles = []Role{
	RoleAdmin,
	RoleManager,
	RoleCashier,
}

var roleTiers = map[Role]int{
	RoleCashier: 1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	_, ok := roleTiers[r]
	return ok
}

// Tier returns the capability level of the role. Unknown roles map to 0 so
// they never satisfy any requirement.
func (r Role) Tier() int {
	return roleTiers[r]
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
