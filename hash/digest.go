package hash

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DigestSize is the width of a content digest in bytes.
const DigestSize = 16

// Version tags the canonical stream layout. It is mixed into every digest so
// a future change to the canonicalization order can never be mistaken for
// the current one.
const Version = "pxc1"

// Digest is the fixed-width content hash of a payload. The zero value is
// never produced for a real payload and can be used as a sentinel.
type Digest [DigestSize]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 8 hex characters, convenient for log output.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:4])
}

// Sum64 projects the digest onto 64 bits. Useful for shard or bucket
// selection; not a substitute for the digest itself.
func (d Digest) Sum64() uint64 {
	return xxhash.Sum64(d[:])
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes a hex digest string produced by Digest.String.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("hash: parse digest: %w", err)
	}
	if len(raw) != DigestSize {
		return d, fmt.Errorf("hash: parse digest: got %d bytes, want %d", len(raw), DigestSize)
	}
	copy(d[:], raw)
	return d, nil
}
