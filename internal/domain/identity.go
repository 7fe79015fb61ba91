package domain

import "strings"

type Role string

const (
	RoleDiner   Role = "diner"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleManager, RoleAdmin:
		return r
	default:
		return RoleDiner
	}
}

// Identity is the acting session: who is calling and with which backend
// token. It is passed explicitly into repository and coordinator calls,
// never read back from ambient state.
type Identity struct {
	ID    string
	Role  Role
	Token string
}
