// Package token generates opaque bearer tokens for private asset access.
package token

import (
	"crypto/rand"
	"encoding/base64"
)

const entropyBytes = 48

// New returns a URL-safe token carrying 48 bytes of entropy. Guessing or
// enumerating issued tokens is computationally infeasible.
func New() string {
	buf := make([]byte, entropyBytes)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
