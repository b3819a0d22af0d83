// Package idgen generates entity ids.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// IDLength is the number of hex characters in a generated ID.
const IDLength = 24

// Generate creates a new unique ID of 24 lowercase hex characters, the
// shape the Trello API uses for every entity.
func Generate() (string, error) {
	bytes := make([]byte, IDLength/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
