package cryptox

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Snapshot(t *testing.T) {
	key := DeriveKey([]byte("secret-password"), []byte("fixed-salt"))

	assert.Equal(t, "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39", hex.EncodeToString(key))
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt")

	h1 := HashPassword("secret-password", salt)
	h2 := HashPassword("secret-password", salt)
	require.Equal(t, h1, h2)

	raw, err := base64.StdEncoding.DecodeString(h1)
	require.NoError(t, err)
	assert.Equal(t, "34f7a1c64df63ab1ad5b5ee06e64db5713b35f81839823304db63e8e5e6a6a39", hex.EncodeToString(raw))
}

func TestHashPassword_SaltMatters(t *testing.T) {
	assert.NotEqual(t,
		HashPassword("secret-password", []byte("salt-1")),
		HashPassword("secret-password", []byte("salt-2")),
	)
}

func TestGenerateSalt(t *testing.T) {
	a := GenerateSalt()
	b := GenerateSalt()
	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword(t *testing.T) {
	salt := GenerateSalt()
	hash := HashPassword("secret1", salt)

	tests := []struct {
		name     string
		password string
		salt     []byte
		encoded  string
		want     bool
	}{
		{"match", "secret1", salt, hash, true},
		{"wrong password", "secret2", salt, hash, false},
		{"wrong salt", "secret1", []byte("other-salt-value"), hash, false},
		{"empty salt", "secret1", nil, hash, false},
		{"empty digest", "secret1", salt, "", false},
		{"garbage digest", "secret1", salt, "%%%not-base64", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerifyPassword(tc.password, tc.salt, tc.encoded))
		})
	}
}
