package id

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// fingerprintLen is the length of a hex fingerprint.
const fingerprintLen = sha256.Size * 2

// Fingerprint returns the dedup key for a message: the hex sha256 of the
// upper-cased sender and the message text with surrounding space trimmed.
func Fingerprint(sender, message string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToUpper(strings.TrimSpace(sender))))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(message)))
	return hex.EncodeToString(h.Sum(nil))
}

// NewRecordID returns a fresh record ID.
func NewRecordID() string {
	return uuid.NewString()
}

// ParseRecordID validates a record ID and returns it in canonical form.
func ParseRecordID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid record ID %q: %w", s, err)
	}
	return u.String(), nil
}

// ShortFingerprint returns the first n characters of a fingerprint for logs.
func ShortFingerprint(fp string, n int) string {
	if n <= 0 || n >= len(fp) {
		return fp
	}
	return fp[:n]
}

// IsFingerprint reports whether s looks like a value returned by Fingerprint.
func IsFingerprint(s string) bool {
	if len(s) != fingerprintLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
