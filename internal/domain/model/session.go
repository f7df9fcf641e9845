package model

import (
	"time"
)

// Session is the server-side state tied to one session identifier. It
// holds the issued token so the auth gate can re-verify it on every
// request. Expiry is independent of the token's own expiry.
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
