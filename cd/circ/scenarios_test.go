package circ_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"retroio/cd/circ"
	"retroio/cd/efm"
	"retroio/cd/gen"
)

// TestPregapHeaderIsWellFormed covers E1: a single pregap sector carries
// the literal 12-byte data-sync pattern at offset 0 and MSF (0,0,0) BCD
// at bytes 12..14.
func TestPregapHeaderIsWellFormed(t *testing.T) {
	s := gen.Pregap(0)
	require.Equal(t, []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}, s[0:12])
	require.Equal(t, []byte{0x00, 0x00, 0x00}, s[12:15])
}

// TestPregapHeaderSurvivesEncodeDecode feeds pregap sectors through the
// full encoder/decoder pipeline and checks the last decoded payload still
// carries the 12-byte sync header.
func TestPregapHeaderSurvivesEncodeDecode(t *testing.T) {
	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	for n := 0; n < 5; n++ {
		enc.Queue(gen.Pregap(n), nil)
	}

	decoded := circ.Decode(sink.Finish())
	require.NotEmpty(t, decoded)

	last := decoded[len(decoded)-1]
	require.Equal(t, []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}, last.Payload[0:12])
}

// TestSilentAudioProducesAllFFParity covers E2 and spec item 8: for
// all-zero payload input, every emitted CIRC line is P1=0x00x12,
// C2=0xFFx4, P2=0x00x12, C1=0xFFx4 — the inverted form of an all-zero
// (silent) C1/C2 codeword.
func TestSilentAudioProducesAllFFParity(t *testing.T) {
	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	var want [circ.FrameSize]byte
	for i := 0; i < 12; i++ {
		want[i] = 0x00
	}
	for i := 12; i < 16; i++ {
		want[i] = 0xFF
	}
	for i := 16; i < 28; i++ {
		want[i] = 0x00
	}
	for i := 28; i < 32; i++ {
		want[i] = 0xFF
	}

	var lines int
	enc.OnLine = func(l circ.Line) {
		lines++
		require.Equal(t, want, l.Bytes())
	}

	for n := 0; n < 10; n++ {
		enc.Queue(gen.Silence(), nil)
	}

	require.Equal(t, 8*circ.LinesPerSector, lines)
}

// TestRampSectorRoundTripsPastWarmup covers E3: once the 3-sector
// pipeline is warmed up, decoding recovers the exact ramp pattern fed
// in, for every one of the 24 interleave columns.
func TestRampSectorRoundTripsPastWarmup(t *testing.T) {
	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	const n = 6
	sectors := make([][circ.SectorPayloadSize]byte, n)
	for i := range sectors {
		sectors[i] = gen.Ramp()
		enc.Queue(sectors[i], nil)
	}

	decoded := circ.Decode(sink.Finish())
	require.GreaterOrEqual(t, len(decoded), 2)

	for _, d := range decoded[len(decoded)-2:] {
		require.Equal(t, gen.Ramp(), d.Payload)
		require.Equal(t, 0, d.C1Errors)
		require.Equal(t, 0, d.C2Errors)
	}
}

// TestSingleSectorEmitsExactly98Frames covers E5: one real sector queued
// alongside the two filler sectors needed to push it through the
// pipeline's 3-sector buffer flushes as exactly 98 frames of 588 bits.
func TestSingleSectorEmitsExactly98Frames(t *testing.T) {
	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	var lines int
	enc.OnLine = func(circ.Line) { lines++ }

	enc.Queue(gen.Ramp(), nil)
	require.Equal(t, 0, lines, "no sector flushes before the 3-sector buffer fills")

	enc.Queue(gen.Silence(), nil)
	enc.Queue(gen.Silence(), nil)
	require.Equal(t, circ.LinesPerSector, lines)

	channel := sink.Finish()
	const bitsPerFrame = 24 + 3 + 33*(14+3)
	require.Equal(t, 588, bitsPerFrame)
	wantBits := circ.LinesPerSector * bitsPerFrame
	require.Equal(t, 57624, wantBits)
	require.Equal(t, wantBits/8, len(channel))
}
