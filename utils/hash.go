package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// VisitorHash generates a SHA256 fingerprint of IP + user agent, used as the
// daily unique-visitor set member. Not reversible to the raw IP.
func VisitorHash(ip, userAgent string) string {
	hash := sha256.Sum256([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(hash[:])
}
