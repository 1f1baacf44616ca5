package util

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// PayloadFingerprint returns a short BLAKE3 tag for a payload, used in log
// lines to tell polls apart. Equality decisions compare the full payload.
func PayloadFingerprint(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:6])
}
