// internal/models/role.go
package models

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleVendor     Role = "vendor"
	RoleAffiliate  Role = "affiliate"
	RoleInfluencer Role = "influencer"
	RoleBuyer      Role = "buyer"
)

// roleLevels orders roles for hierarchy checks. Affiliates and
// influencers sit at the same level; neither outranks the other.
var roleLevels = map[Role]int{
	RoleBuyer:      1,
	RoleAffiliate:  2,
	RoleInfluencer: 2,
	RoleVendor:     3,
	RoleAdmin:      4,
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r satisfies a requirement for min under the
// role hierarchy. Unknown roles never satisfy anything.
func (r Role) AtLeast(min Role) bool {
	level, ok := roleLevels[r]
	if !ok {
		return false
	}
	required, ok := roleLevels[min]
	if !ok {
		return false
	}
	return level >= required
}

func AllRoles() []Role {
	return []Role{RoleAdmin, RoleVendor, RoleAffiliate, RoleInfluencer, RoleBuyer}
}
