package history

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"runtime"
	"strings"
)

// PrefixManifest is the key prefix for manifest entries
const PrefixManifest = "manifest"

// GenerateKey generates a key from a manifest path.
// The key is a SHA256 hash of the normalized path.
func GenerateKey(path string) string {
	hash := sha256.Sum256([]byte(normalizeForKey(path)))
	return hex.EncodeToString(hash[:])
}

// ManifestKey generates a prefixed key for a manifest path
func ManifestKey(path string) string {
	return PrefixManifest + ":" + GenerateKey(path)
}

// normalizeForKey cleans a path for consistent key generation
func normalizeForKey(path string) string {
	path = filepath.Clean(path)

	// Windows paths are case-insensitive
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
	}
	return path
}
