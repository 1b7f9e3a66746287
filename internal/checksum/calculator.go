package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Calculator computes content fingerprints for source listing files.
// The fingerprint ties a load run in the logs to the exact bytes that
// produced it.
type Calculator interface {
	// Calculate computes the fingerprint of content.
	Calculate(content []byte) string

	// CalculateReader computes the fingerprint of everything readable
	// from r without buffering the whole input.
	CalculateReader(r io.Reader) (string, error)
}

// SHA256 implements Calculator with SHA-256 hex digests.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Value semantics avoid heap allocations.
type SHA256 struct{}

// New creates a SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Calculate computes the SHA-256 digest of content as lowercase hex.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateReader streams r through SHA-256 and returns the digest as
// lowercase hex. Returns the reader's error if reading fails.
func (c SHA256) CalculateReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
