// Package fingerprint derives strong HTTP validators from object content.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the lowercase hex sha256 of data. The digest depends on the
// bytes alone, so identical content always yields an identical ETag.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
