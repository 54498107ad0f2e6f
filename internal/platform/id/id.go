// Package id provides utilities for generating URL-safe identifiers.
//
// Identifiers are random (version 4) UUIDs encoded as lowercase base32
// (RFC 4648) with no padding: 26 characters, safe for URLs and file paths.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new random identifier.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// ShortCode returns the first n upper-case hex digits of a random UUID.
func ShortCode(n int) (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	hex := strings.ReplaceAll(value.String(), "-", "")
	if n <= 0 || n > len(hex) {
		n = len(hex)
	}
	return strings.ToUpper(hex[:n]), nil
}
