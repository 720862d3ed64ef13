package entity

import "time"

// Role is the authorization role assigned to an account at creation.
// Auth flows never mutate it.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

// ParseRole maps free-form input to a known role, falling back to the
// default client role for empty or unknown values.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleFreelancer:
		return RoleFreelancer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleClient
	}
}

// Status is advisory presence information. Login sets it to online;
// nothing in this codebase transitions it back.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never plaintext, and must never be
// serialized into any API response.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      Role
	Status    Status
	PhotoURL  string
	Bio       string
	Skills    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
