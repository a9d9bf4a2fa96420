package msf_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"retroio/cd/msf"
)

func TestLBARoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lba := rapid.IntRange(0, msf.FramesPerSecond*msf.SecondsPerMinute*100-1).Draw(rt, "lba")
		got := msf.ToLBA(msf.FromLBA(lba))
		require.Equal(rt, lba, got)
	})
}

func TestBCDRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := byte(rapid.IntRange(0, 99).Draw(rt, "n"))
		require.Equal(rt, n, msf.FromBCD(msf.ToBCD(n)))
	})
}

func TestZeroLBAIsZeroTimecode(t *testing.T) {
	got := msf.FromLBA(0)
	require.Equal(t, msf.MSF{}, got)
}
