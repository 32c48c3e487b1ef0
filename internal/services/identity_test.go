// This file contains unit tests for the built-in passcode identity provider.
package services

import (
	"testing"

	"github.com/balatechn/tech-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Tests use bcrypt.MinCost; the production cost only changes hashing time,
// not behavior.
func newTestProvider(t *testing.T) *PasscodeProvider {
	t.Helper()
	p, err := NewPasscodeProvider(bcrypt.MinCost)
	require.NoError(t, err)
	return p
}

func TestIdentify_AdminPasscode(t *testing.T) {
	p := newTestProvider(t)

	user, err := p.Identify("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestIdentify_EngineerPasscode(t *testing.T) {
	p := newTestProvider(t)

	user, err := p.Identify("engineer")
	require.NoError(t, err)
	assert.Equal(t, "eng-1", user.ID)
	assert.Equal(t, models.RoleEngineer, user.Role)
	assert.False(t, user.IsAdmin())
}

func TestIdentify_RejectsUnknownPasscode(t *testing.T) {
	p := newTestProvider(t)

	for _, passcode := range []string{"", "Admin", "admin ", "wrong", "administrator"} {
		_, err := p.Identify(passcode)
		assert.ErrorIs(t, err, ErrInvalidPasscode, "passcode %q should be rejected", passcode)
	}
}

func TestIdentify_ReturnsACopy(t *testing.T) {
	p := newTestProvider(t)

	first, err := p.Identify("admin")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := p.Identify("admin")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Name, "callers must not be able to alter the fixed identities")
}
