package utils

import (
	"crypto/rand"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateEventID returns a new opaque event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}

// GenerateAssetKey builds a storage key for an uploaded file: a random token
// plus the original extension. The key is never derived from event identity,
// so concurrent uploads cannot collide.
func GenerateAssetKey(originalName string) string {
	token := make([]byte, 16)
	if _, err := rand.Read(token); err != nil {
		// uuid fallback if the random source fails
		return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	}
	return hex.EncodeToString(token) + strings.ToLower(filepath.Ext(originalName))
}
