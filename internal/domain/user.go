package domain

import "time"

// User represents a user entity in the system. Identity resolution happens
// outside this core: commands arrive with an already-resolved user id.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRoles contains all valid user roles.
var ValidRoles = []string{"admin", "user", "moderator"}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
