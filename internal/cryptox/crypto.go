// Package cryptox implements the credential hasher: per-user random salts and
// argon2id password digests compared in constant time.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt in bytes.
const SaltSize = 16

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// GenerateSalt returns SaltSize bytes from a cryptographically secure source.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveKey runs argon2id over password and salt.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns the base64 encoded argon2id digest of password.
// The same password and salt always produce the same string.
func HashPassword(password string, salt []byte) string {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return base64.StdEncoding.EncodeToString(DeriveKey(pw, salt))
}

// VerifyPassword reports whether password hashes to encoded under salt.
// An empty salt or a malformed digest never verifies.
func VerifyPassword(password string, salt []byte, encoded string) bool {
	if len(salt) == 0 || encoded == "" {
		return false
	}

	want, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	return subtle.ConstantTimeCompare(DeriveKey(pw, salt), want) == 1
}
