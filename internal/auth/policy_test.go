package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyName(t *testing.T) {
	assert.Equal(t, "Read__users", PolicyName(PermissionRead, "/users"))
	assert.Equal(t, "Write__donations", PolicyName(PermissionWrite, "/donations"))
	assert.Equal(t, "Delete__userroleconfiguration", PolicyName(PermissionDelete, "/userroleconfiguration"))
	// Slashes and spaces both collapse to underscores.
	assert.Equal(t, "Update__temple_pages", PolicyName(PermissionUpdate, "/temple pages"))
}

func TestPermissionKindForMethod(t *testing.T) {
	assert.Equal(t, PermissionRead, PermissionKindForMethod("GET"))
	assert.Equal(t, PermissionWrite, PermissionKindForMethod("POST"))
	assert.Equal(t, PermissionUpdate, PermissionKindForMethod("PUT"))
	assert.Equal(t, PermissionUpdate, PermissionKindForMethod("PATCH"))
	assert.Equal(t, PermissionDelete, PermissionKindForMethod("DELETE"))
	assert.Equal(t, PermissionRead, PermissionKindForMethod("HEAD"))
}

func TestPolicyRegistry(t *testing.T) {
	r := NewPolicyRegistry()

	name := r.Register(PermissionRead, "/donations")
	assert.Equal(t, "Read__donations", name)
	assert.Equal(t, 1, r.Len())

	req, ok := r.Lookup(name)
	require.True(t, ok)
	assert.Equal(t, PermissionRead, req.Kind)
	assert.Equal(t, "/donations", req.PageURL)

	// Re-registering the same pair is a no-op.
	again := r.Register(PermissionRead, "/donations")
	assert.Equal(t, name, again)
	assert.Equal(t, 1, r.Len())

	// A different kind on the same page is a distinct policy.
	r.Register(PermissionWrite, "/donations")
	assert.Equal(t, 2, r.Len())

	_, ok = r.Lookup("Read__unknown")
	assert.False(t, ok)
}
