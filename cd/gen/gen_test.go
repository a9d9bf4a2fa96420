package gen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"retroio/cd/circ"
	"retroio/cd/gen"
	"retroio/cd/msf"
)

func TestSilenceIsAllZero(t *testing.T) {
	var zero [circ.SectorPayloadSize]byte
	require.Equal(t, zero, gen.Silence())
}

func TestRampByteEqualsRowIndex(t *testing.T) {
	s := gen.Ramp()
	for j := 0; j < circ.LinesPerSector; j++ {
		for k := 0; k < 24; k++ {
			require.Equal(t, byte(j), s[j*24+k])
		}
	}
}

func TestPregapFirstSectorHasZeroTimecode(t *testing.T) {
	s := gen.Pregap(0)
	require.Equal(t, []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}, s[0:12])
	require.Equal(t, [3]byte{0x00, 0x00, 0x00}, [3]byte{s[12], s[13], s[14]})
}

func TestPregapTimecodeIncrements(t *testing.T) {
	s := gen.Pregap(76) // 1 second, 1 frame: 75*1 + 1 = 76
	require.Equal(t, msf.MSF{Minute: 0, Second: 1, Frame: 1}, msf.FromBytes([3]byte{s[12], s[13], s[14]}))
}
