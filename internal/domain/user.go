package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleMarketer Role = "marketer"
)

// ValidRole reports whether r is one of the registrable roles.
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleAgent || r == RoleMarketer
}

// User is an account known to the identity layer. The dispatch core only ever
// reads ID and Role.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the authenticated caller as seen by the dispatch core.
type Identity struct {
	UserID string
	Role   Role
}
