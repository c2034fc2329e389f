package security

import (
	"testing"

	"user_hub/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		op   Operation
		want bool
	}{
		{"authenticated may edit own profile", model.RoleAuthenticated, OpProfileWrite, true},
		{"anonymous may edit own profile", model.RoleAnonymous, OpProfileWrite, true},
		{"authenticated may not list users", model.RoleAuthenticated, OpUserList, false},
		{"authenticated may not read users", model.RoleAuthenticated, OpUserRead, false},
		{"manager may list users", model.RoleManager, OpUserList, true},
		{"manager may read users", model.RoleManager, OpUserRead, true},
		{"manager may not create users", model.RoleManager, OpUserWrite, false},
		{"manager may not delete users", model.RoleManager, OpUserDelete, false},
		{"manager may not toggle professional", model.RoleManager, OpSetProfessional, false},
		{"admin may list users", model.RoleAdmin, OpUserList, true},
		{"admin may create users", model.RoleAdmin, OpUserWrite, true},
		{"admin may delete users", model.RoleAdmin, OpUserDelete, true},
		{"admin may toggle professional", model.RoleAdmin, OpSetProfessional, true},
		{"unknown role is denied", model.Role("SUPERUSER"), OpProfileRead, false},
		{"unknown operation is denied", model.RoleAdmin, Operation("users:impersonate"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.role, tt.op))
		})
	}
}
