package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	assert.False(t, RoleClient.IsStaff())
	assert.False(t, RoleClient.IsAdmin())

	assert.True(t, RoleCashier.IsStaff())
	assert.False(t, RoleCashier.IsAdmin())

	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleAdmin.IsAdmin())
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	role := Role("manager")

	assert.False(t, role.IsStaff())
	assert.False(t, role.IsAdmin())
}
