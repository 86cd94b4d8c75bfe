package domain

import "time"

// Role describes the privilege level carried inside access tokens.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleMember  Role = "MEMBER"
	RoleUnknown Role = "UNKNOWN"
)

// RolePrefix is prepended to a role when it is exposed as an authority string.
const RolePrefix = "ROLE_"

// RoleOf parses a role name, with or without the authority prefix.
// Unrecognized values map to RoleUnknown.
func RoleOf(name string) Role {
	switch Role(trimRolePrefix(name)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleMember:
		return RoleMember
	default:
		return RoleUnknown
	}
}

// Authority returns the role as a prefixed authority string.
func (r Role) Authority() string {
	return RolePrefix + string(r)
}

func trimRolePrefix(name string) string {
	if len(name) >= len(RolePrefix) && name[:len(RolePrefix)] == RolePrefix {
		return name[len(RolePrefix):]
	}
	return name
}

// User is the domain model for forum members.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
