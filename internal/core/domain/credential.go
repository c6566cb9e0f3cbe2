package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16

	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
)

// Credential is the stored form of an account password.
type Credential struct {
	PasswordHash string
	Salt         string
}

// NewCredential generates a fresh salt and hashes password with it.
func NewCredential(password string) (Credential, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return Credential{}, err
	}
	hash, err := HashPassword(password, salt)
	if err != nil {
		return Credential{}, err
	}
	return Credential{PasswordHash: hash, Salt: salt}, nil
}

// GenerateSalt returns a base64 encoded random salt.
func GenerateSalt() (string, error) {
	b := make([]byte, saltSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// HashPassword derives the base64 encoded argon2id hash of password with the given base64 salt.
func HashPassword(password, salt string) (string, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.StdEncoding.EncodeToString(key), nil
}

// Matches reports whether password hashes to the stored hash. A corrupt salt never matches.
func (c Credential) Matches(password string) bool {
	hash, err := HashPassword(password, c.Salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(c.PasswordHash)) == 1
}
