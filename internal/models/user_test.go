// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Secret123"))

	assert.NotEqual(t, "Secret123", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Secret123"))
	assert.Error(t, user.CheckPassword("secret123"))
	assert.Error(t, user.CheckPassword(""))
}

func TestPasswordHashesDiffer(t *testing.T) {
	a := &User{}
	b := &User{}
	require.NoError(t, a.SetPassword("Secret123"))
	require.NoError(t, b.SetPassword("Secret123"))

	// bcrypt salts per hash
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}
