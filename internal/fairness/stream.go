// Package fairness implements the provably-fair randomness stream. Every
// random value in a round is derived from SHA-256(seed:nonce:counter), so a
// player who learns the seed after play can recompute each draw and audit the
// whole round.
package fairness

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidRange is returned by NextInt when max is not a positive integer.
var ErrInvalidRange = errors.New("max must be a positive integer")

// SeedBytes is the size of a generated session seed before hex encoding.
const SeedBytes = 32

const twoPow48 = 1 << 48

// Stream is a deterministic sequence of uniform floats in [0,1) scoped to a
// (seed, nonce) pair. Two streams built with the same pair produce
// call-for-call identical values.
type Stream struct {
	seed    string
	nonce   string
	counter uint64
}

// NewStream creates a stream scoped to seed and nonce with the counter at zero.
func NewStream(seed, nonce string) *Stream {
	return &Stream{seed: seed, nonce: nonce}
}

// Next returns the next float in [0,1) and advances the counter.
// The value is the first 6 bytes of SHA-256(seed:nonce:counter) read as a
// 48-bit big-endian integer, divided by 2^48.
func (s *Stream) Next() float64 {
	digest := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%d", s.seed, s.nonce, s.counter))
	s.counter++

	var n uint64
	for _, b := range digest[:6] {
		n = n<<8 | uint64(b)
	}
	return float64(n) / twoPow48
}

// NextInt maps the next float onto [0, max). The stream does not advance when
// max is invalid.
func (s *Stream) NextInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRange, max)
	}
	return int(s.Next() * float64(max)), nil
}

// Counter reports how many values have been drawn from the stream.
func (s *Stream) Counter() uint64 {
	return s.counter
}

// NewSeed generates a fresh hex-encoded session seed.
func NewSeed() (string, error) {
	buf := make([]byte, SeedBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Commitment returns the hex SHA-256 digest of a seed. The commitment is
// published before play; the seed itself is revealed afterwards so rounds can
// be replayed.
func Commitment(seed string) string {
	digest := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(digest[:])
}
