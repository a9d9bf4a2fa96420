package scramble_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"retroio/cd/scramble"
)

func TestApplyIsSelfInverse(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, scramble.PayloadLength).Draw(rt, "n")
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		}
		original := append([]byte{}, data...)

		scramble.Apply(data)
		scramble.Apply(data)

		require.Equal(rt, original, data)
	})
}

func TestFirstByteIsDeterministicFromSeed(t *testing.T) {
	// LFSR seeded at 0x0001: the first output bit is reg&1 == 1, so the
	// first scramble byte's low bit is always set.
	require.Equal(t, byte(1), scramble.Byte(0)&1)
}
