// Package services provides the business logic layer for Tech Manager.
// This file implements identity selection: mapping a caller-supplied passcode
// to one of the fixed built-in identities.
//
// This is explicitly not an authentication system. There are no accounts, no
// tokens and no server-side verification; the passcode is a demo convenience
// that selects a role. A production deployment would replace PasscodeProvider
// with a real implementation behind the same interface.
package services

import (
	"errors"
	"fmt"

	"github.com/balatechn/tech-manager/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPasscode is returned for any passcode that does not select an
// identity. It deliberately carries no detail beyond "invalid".
var ErrInvalidPasscode = errors.New("services: invalid passcode")

// IdentityProvider maps a caller-supplied secret to an identity.
// Implementations return ErrInvalidPasscode for unknown secrets.
type IdentityProvider interface {
	Identify(passcode string) (*models.User, error)
}

// identity pairs a stored passcode hash with the user record it selects.
type identity struct {
	hash []byte
	user models.User
}

// PasscodeProvider is the built-in IdentityProvider with exactly two fixed
// identities: "admin" selects the manager, "engineer" the system engineer.
//
// Passcodes are held as bcrypt hashes and compared with
// bcrypt.CompareHashAndPassword, so comparison is constant-time even though
// the secrets themselves are documented on the login page.
type PasscodeProvider struct {
	identities []identity
}

// NewPasscodeProvider creates the provider and hashes the built-in passcodes
// at the configured cost.
func NewPasscodeProvider(bcryptCost int) (*PasscodeProvider, error) {
	fixed := []struct {
		passcode string
		user     models.User
	}{
		{"admin", models.User{ID: "admin-1", Name: "Bala (Manager)", Role: models.RoleAdmin}},
		{"engineer", models.User{ID: "eng-1", Name: "System Engineer", Role: models.RoleEngineer}},
	}

	p := &PasscodeProvider{}
	for _, f := range fixed {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.passcode), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash passcode: %w", err)
		}
		p.identities = append(p.identities, identity{hash: hash, user: f.user})
	}

	return p, nil
}

// Identify returns the identity selected by the passcode, or
// ErrInvalidPasscode. Every stored hash is compared on every call so the
// rejection path costs the same regardless of which passcode was wrong.
func (p *PasscodeProvider) Identify(passcode string) (*models.User, error) {
	var matched *models.User
	for i := range p.identities {
		if bcrypt.CompareHashAndPassword(p.identities[i].hash, []byte(passcode)) == nil {
			matched = &p.identities[i].user
		}
	}

	if matched == nil {
		return nil, ErrInvalidPasscode
	}

	user := *matched
	return &user, nil
}
