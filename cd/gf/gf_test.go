package gf_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"retroio/cd/gf"
)

func TestMulByZero(t *testing.T) {
	for a := 0; a < 256; a++ {
		require.Equal(t, byte(0), gf.Mul(byte(a), 0))
		require.Equal(t, byte(0), gf.Mul(0, byte(a)))
	}
}

func TestMulByOneIsIdentity(t *testing.T) {
	for a := 1; a < 256; a++ {
		require.Equal(t, byte(a), gf.Mul(byte(a), 1))
	}
}

func TestInvPanicsOnZero(t *testing.T) {
	require.Panics(t, func() { gf.Inv(0) })
}

func TestInvIsMultiplicativeInverse(t *testing.T) {
	for a := 1; a < 256; a++ {
		require.Equal(t, byte(1), gf.Mul(byte(a), gf.Inv(byte(a))))
	}
}

// TestPropertyMulCommutes checks a*b == b*a for all non-zero field elements,
// one of the universal invariants a GF(2^8) implementation must hold.
func TestPropertyMulCommutes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := byte(rapid.IntRange(1, 255).Draw(rt, "a"))
		b := byte(rapid.IntRange(1, 255).Draw(rt, "b"))
		require.Equal(rt, gf.Mul(a, b), gf.Mul(b, a))
	})
}

// TestPropertyExpLogRoundTrip checks alpha^log(a) == a for all non-zero a.
func TestPropertyExpLogRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := byte(rapid.IntRange(1, 255).Draw(rt, "a"))
		require.Equal(rt, a, gf.Exp(gf.Log(a)))
	})
}

func TestAddIsXor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := byte(rapid.IntRange(0, 255).Draw(rt, "a"))
		b := byte(rapid.IntRange(0, 255).Draw(rt, "b"))
		require.Equal(rt, a^b, gf.Add(a, b))
		require.Equal(rt, gf.Add(a, b), gf.Sub(a, b))
	})
}
