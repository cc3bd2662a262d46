package models

import "time"

// OTPChallenge is the stored form of a pending one-time code. Only the
// SHA-256 hash of the code is persisted; the challenge store compares
// and consumes it atomically.
type OTPChallenge struct {
	CodeHash  string    `json:"code_hash"`
	Mobile    string    `json:"mobile"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
