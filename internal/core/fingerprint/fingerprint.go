// Package fingerprint computes deterministic content identities.
// A fingerprint is the lowercase hex SHA-256 of canonical content bytes
// and doubles as the idempotency key and the external content id
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Fingerprint is a 64 char lowercase hex digest
type Fingerprint string

// HexLen is the length of the wire form
const HexLen = sha256.Size * 2

// Empty identifies content that canonicalizes to zero bytes.
// Hashing empty input is defined rather than an error so the
// pipeline can short-circuit on it cleanly
var Empty = Bytes(nil)

// Bytes fingerprints raw bytes as-is
func Bytes(b []byte) Fingerprint {
	sum := sha256.Sum256(b)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Text fingerprints a text payload after canonicalization
// so encoding and whitespace noise never splits identity
func Text(s string) Fingerprint {
	return Bytes([]byte(CanonicalText(s)))
}

// URL fingerprints a remote content reference after URL canonicalization.
// The reference itself is the identity; the bytes behind it are not fetched here
func URL(raw string) (Fingerprint, error) {
	c, err := CanonicalURL(raw)
	if err != nil {
		return "", err
	}
	return Bytes([]byte(c)), nil
}

// String returns the wire form
func (f Fingerprint) String() string { return string(f) }

// IsEmpty reports whether f identifies empty content
func (f Fingerprint) IsEmpty() bool { return f == Empty }

// Valid reports whether f is a well formed digest
func (f Fingerprint) Valid() bool {
	if len(f) != HexLen {
		return false
	}
	for _, r := range f {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

// Parse validates an external digest, folding case first
func Parse(s string) (Fingerprint, error) {
	f := Fingerprint(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("malformed fingerprint %q", s)
	}
	return f, nil
}
