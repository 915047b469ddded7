package domain

// Role is the single role attached to an Actor. Roles are a closed set and
// never combined; elevation or demotion is an administrative action outside
// this core.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleModerator   Role = "MODERATOR"
	RoleContributor Role = "CONTRIBUTOR"
)

// ParseRole maps a role claim to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleContributor:
		return Role(s), true
	default:
		return "", false
	}
}

// Actor is an authenticated user with a resolved role. A nil *Actor is the
// anonymous context.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

const ActorCtxKey = "jawaf-actor"
