// Package hasher computes content fingerprints used to deduplicate screenshots.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// ChunkSize is the read size used while streaming content into the digest.
const ChunkSize = 8192

// Hash streams r into a SHA-256 digest and returns it as lowercase hex.
func Hash(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile opens path and returns the fingerprint of its bytes.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Hash(f)
}
