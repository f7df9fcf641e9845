package model

import (
	"time"
)

// User is a registered account. Users are immutable after registration
// and live for the lifetime of the process.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"` // Not exposed
	CreatedAt time.Time `json:"created_at"`
}
