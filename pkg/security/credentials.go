package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/douglasalbuquerque/vision-api/pkg/config"
)

// CredentialVerifier checks HTTP Basic credentials against the single API
// account configured for ERP integrations.
type CredentialVerifier struct {
	username     string
	password     string
	passwordHash string
}

// NewCredentialVerifier builds a verifier from config. A configured
// password hash takes precedence over the plaintext password.
func NewCredentialVerifier(cfg config.AuthConfig) (*CredentialVerifier, error) {
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		return nil, fmt.Errorf("auth username is required")
	}

	hash := strings.TrimSpace(cfg.PasswordHash)
	if hash != "" {
		if _, _, _, err := decodeHash(hash); err != nil {
			return nil, fmt.Errorf("auth password hash: %w", err)
		}
		return &CredentialVerifier{username: username, passwordHash: hash}, nil
	}

	if cfg.Password == "" {
		return nil, fmt.Errorf("auth password or password hash is required")
	}
	return &CredentialVerifier{username: username, password: cfg.Password}, nil
}

// Verify reports whether the supplied credentials match. Comparisons run in
// constant time with respect to the secret.
func (v *CredentialVerifier) Verify(username, password string) bool {
	if v == nil {
		return false
	}
	userOK := constantTimeEqual(username, v.username)

	var passOK bool
	if v.passwordHash != "" {
		ok, err := VerifyPassword(password, v.passwordHash)
		passOK = err == nil && ok
	} else {
		passOK = constantTimeEqual(password, v.password)
	}
	return userOK && passOK
}

// constantTimeEqual hashes both sides first so the comparison does not leak length.
func constantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
