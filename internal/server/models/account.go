package models

import "time"

// Account is a cloud identity. Email is unique; PasswordHash is the
// base64 argon2id digest of the password with Salt.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Salt         []byte
	CreatedAt    time.Time
}
