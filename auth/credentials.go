package auth

import (
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the single admin secret pair. The password is kept only
// as a bcrypt hash.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials hashes password once at startup. Empty secrets produce
// credentials that never match.
func NewCredentials(username, password string) (*Credentials, error) {
	c := &Credentials{username: username}
	if username == "" || password == "" {
		return c, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hashing admin password")
	}
	c.passwordHash = hash
	return c, nil
}

// Check reports whether both values match the configured secrets exactly.
func (c *Credentials) Check(username, password string) bool {
	if c.username == "" || len(c.passwordHash) == 0 {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
