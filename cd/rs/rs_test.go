package rs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"retroio/cd/gf"
	"retroio/cd/rs"
)

func TestSilentLineProducesZeroParity(t *testing.T) {
	var msg24, msg28 [24]byte
	var m28 [28]byte
	_ = msg24
	_ = msg28

	p2 := rs.EncodeC2(msg24)
	for _, b := range p2 {
		require.Equal(t, byte(0), b)
	}

	p1 := rs.EncodeC1(m28)
	for _, b := range p1 {
		require.Equal(t, byte(0), b)
	}
}

func TestC1CodewordSyndromesAreZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var msg [28]byte
		for i := range msg {
			msg[i] = byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		}
		parity := rs.EncodeC1(msg)

		codeword := append(append([]byte{}, msg[:]...), parity[:]...)
		syn := rs.Syndromes(codeword, rs.C1ParityCount)
		require.False(rt, rs.NonZero(syn), "expected zero syndromes, got %v", syn)
	})
}

func TestC2CodewordSyndromesAreZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var msg [24]byte
		for i := range msg {
			msg[i] = byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		}
		parity := rs.EncodeC2(msg)

		// Reassemble the 28-symbol codeword with parity in the middle,
		// columns 12..15, as laid out on the physical frame.
		codeword := make([]byte, 28)
		copy(codeword[0:12], msg[0:12])
		copy(codeword[12:16], parity[:])
		copy(codeword[16:28], msg[12:24])

		syn := rs.Syndromes(codeword, rs.C2ParityCount)
		require.False(rt, rs.NonZero(syn), "expected zero syndromes, got %v", syn)
	})
}

// TestC2Linearity checks the spec's explicit linearity invariant:
// C2[a xor b] == C2[a] xor C2[b].
func TestC2Linearity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var a, b [24]byte
		for i := range a {
			a[i] = byte(rapid.IntRange(0, 255).Draw(rt, "a"))
			b[i] = byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		}

		var sum [24]byte
		for i := range sum {
			sum[i] = gf.Add(a[i], b[i])
		}

		pa := rs.EncodeC2(a)
		pb := rs.EncodeC2(b)
		psum := rs.EncodeC2(sum)

		for j := range psum {
			require.Equal(rt, psum[j], gf.Add(pa[j], pb[j]))
		}
	})
}

func TestBerlekampMasseyZeroSyndromesGivesTrivialLocator(t *testing.T) {
	syn := make([]byte, 4)
	locator := rs.BerlekampMassey(syn)
	require.Equal(t, 0, locator.Degree())
	require.Equal(t, byte(1), locator.Coefficient(0))
}

func TestForneySyndromesNoErasuresIsIdentity(t *testing.T) {
	syn := []byte{1, 2, 3, 4}
	out := rs.ForneySyndromes(syn, nil)
	require.Equal(t, syn, out)
}
