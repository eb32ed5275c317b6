package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDeterminism(t *testing.T) {
	a := NewStream("secret-seed", "bj-7")
	b := NewStream("secret-seed", "bj-7")

	for i := 0; i < 100; i++ {
		if got, want := a.Next(), b.Next(); got != want {
			t.Fatalf("call %d: streams diverged: %v != %v", i, got, want)
		}
	}
}

func TestStreamRange(t *testing.T) {
	s := NewStream("seed", "range")
	for i := 0; i < 1000; i++ {
		v := s.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("call %d: %v outside [0,1)", i, v)
		}
	}
}

func TestStreamsDifferByNonce(t *testing.T) {
	a := NewStream("seed", "bac-1")
	b := NewStream("seed", "bac-2")

	same := 0
	for i := 0; i < 20; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	assert.Less(t, same, 20, "distinct nonces should not reproduce the sequence")
}

func TestNextInt(t *testing.T) {
	s := NewStream("seed", "ints")
	for i := 0; i < 1000; i++ {
		n, err := s.NextInt(37)
		require.NoError(t, err)
		if n < 0 || n >= 37 {
			t.Fatalf("call %d: %d outside [0,37)", i, n)
		}
	}
}

func TestNextIntInvalidRange(t *testing.T) {
	s := NewStream("seed", "bad")
	before := s.Counter()

	for _, max := range []int{0, -1, -37} {
		_, err := s.NextInt(max)
		require.ErrorIs(t, err, ErrInvalidRange)
	}

	// Failed calls must not consume the stream.
	assert.Equal(t, before, s.Counter())
}

func TestCounterAdvances(t *testing.T) {
	s := NewStream("seed", "counter")
	require.EqualValues(t, 0, s.Counter())
	s.Next()
	s.Next()
	require.EqualValues(t, 2, s.Counter())
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)

	assert.Len(t, a, SeedBytes*2)
	assert.NotEqual(t, a, b)
}

func TestCommitment(t *testing.T) {
	c := Commitment("seed")
	assert.Len(t, c, 64)
	assert.Equal(t, c, Commitment("seed"))
	assert.NotEqual(t, c, Commitment("other"))
}
