package domain

import "time"

// Role is the authorization level attached to a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the per-account row owned by the identity provider's signup flow.
type Profile struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
