// Package content defines the media kinds the verification pipeline accepts
package content

import (
	"fmt"
	"strings"
)

// Type tags the media kind of a submitted payload
type Type string

// Supported media kinds
const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeVideo Type = "video"
	TypeAudio Type = "audio"
)

// Types lists every supported kind in stable order
func Types() []Type {
	return []Type{TypeText, TypeImage, TypeVideo, TypeAudio}
}

// Valid reports whether t names a supported kind
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeVideo, TypeAudio:
		return true
	}
	return false
}

// String returns the wire form
func (t Type) String() string { return string(t) }

// ParseType normalizes and validates a wire value
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unsupported content type %q", s)
	}
	return t, nil
}
