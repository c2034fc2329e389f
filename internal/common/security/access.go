package security

import (
	"user_hub/internal/domain/model"
)

// Operation is the closed set of protected operations.
type Operation string

const (
	OpProfileRead     Operation = "profile:read"
	OpProfileWrite    Operation = "profile:write"
	OpUserList        Operation = "users:list"
	OpUserRead        Operation = "users:read"
	OpUserWrite       Operation = "users:write"
	OpUserDelete      Operation = "users:delete"
	OpSetProfessional Operation = "users:set-professional"
)

// Authorize reports whether role may perform op. Self-service profile
// operations act on the caller's own identity and are open to every valid
// role; managers may list and read other accounts but never mutate them.
func Authorize(role model.Role, op Operation) bool {
	if !role.Valid() {
		return false
	}
	switch op {
	case OpProfileRead, OpProfileWrite:
		return true
	case OpUserList, OpUserRead:
		return role == model.RoleAdmin || role == model.RoleManager
	case OpUserWrite, OpUserDelete, OpSetProfessional:
		return role == model.RoleAdmin
	}
	return false
}
