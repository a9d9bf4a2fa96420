package circ_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"retroio/cd/circ"
	"retroio/cd/efm"
)

// fillSector deterministically fills a sector so distinct queued sectors
// never collide, and never accidentally contains the 12-byte data-sync
// pattern (which would only ever appear in real Mode 1/2 sector headers).
func fillSector(n int) [circ.SectorPayloadSize]byte {
	var s [circ.SectorPayloadSize]byte
	for i := range s {
		s[i] = byte((n*37 + i) % 251)
	}
	return s
}

func TestEncodeDecodeRoundTripOnceHistoryIsFull(t *testing.T) {
	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	sectors := make([][circ.SectorPayloadSize]byte, 5)
	for n := range sectors {
		sectors[n] = fillSector(n)
		enc.Queue(sectors[n], nil)
	}

	channel := sink.Finish()
	decoded := circ.Decode(channel)

	// Queuing 5 sectors flushes encoder sectors 0, 1 and 2 (98 lines
	// each); sectorRanges drops the first decoded sector unconditionally,
	// leaving decoded[0] for encoder sector 1 and decoded[1] for encoder
	// sector 2. Only sector 2 has a full ~106-row lookback window behind
	// it, so it is the one guaranteed to de-interleave without gaps.
	require.Len(t, decoded, 2)
	require.Equal(t, sectors[2], decoded[1].Payload)
	require.False(t, decoded[1].Descrambled)
	require.Equal(t, 0, decoded[1].MergeErrors)
	require.Equal(t, 0, decoded[1].Erasures)

	var zeroSubchannel [circ.SubchannelSize]byte
	require.Equal(t, zeroSubchannel, decoded[1].Subchannel)
}

func TestOnLineHookSeesEveryEmittedLine(t *testing.T) {
	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	var lines int
	enc.OnLine = func(circ.Line) { lines++ }

	for n := 0; n < 3; n++ {
		enc.Queue(fillSector(n), nil)
	}

	require.Equal(t, circ.LinesPerSector, lines)
}

func TestSingleFrameRoundTripsThroughExtractFrames(t *testing.T) {
	sink := efm.NewBitSink()
	control := efm.NewByteSymbol(0x42)
	data := make([]efm.Symbol, efm.DataSymbolsPerFrame)
	for i := range data {
		data[i] = efm.NewByteSymbol(byte(i))
	}
	sink.PutFrame(control, data)
	// A following frame so the last symbol's trailing run, and the
	// frame-to-frame sync transition, are both exercised.
	sink.PutFrame(efm.NewByteSymbol(0), data)

	frames := circ.ExtractFrames(sink.Finish())
	require.Len(t, frames, 2)

	require.True(t, frames[0].MergeValid)
	b, ok := frames[0].Control.IsByte()
	require.True(t, ok)
	require.Equal(t, byte(0x42), b)
	require.Equal(t, data, frames[0].Data[:])
}

func TestGroupSectorsDropsFirstAndSplitsOnS0(t *testing.T) {
	mkLine := func(control efm.Symbol) circ.Frame {
		return circ.Frame{Control: control, MergeValid: true}
	}

	var frames []circ.Frame
	frames = append(frames, mkLine(efm.S0), mkLine(efm.S1), mkLine(efm.NewByteSymbol(1)))
	frames = append(frames, mkLine(efm.S0), mkLine(efm.S1), mkLine(efm.NewByteSymbol(2)))
	frames = append(frames, mkLine(efm.S0), mkLine(efm.S1), mkLine(efm.NewByteSymbol(3)))

	sectors := circ.GroupSectors(frames)
	require.Len(t, sectors, 2)
	require.True(t, sectors[0][0].Control.IsS0())
	b, ok := sectors[0][2].Control.IsByte()
	require.True(t, ok)
	require.Equal(t, byte(2), b)

	b, ok = sectors[1][2].Control.IsByte()
	require.True(t, ok)
	require.Equal(t, byte(3), b)
}

func TestFindDataSyncAndDescrambleRoundTrip(t *testing.T) {
	var payload [circ.SectorPayloadSize]byte
	for i := 12; i < len(payload); i++ {
		payload[i] = byte(i * 7)
	}
	copy(payload[0:12], []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00})
	original := payload

	circ.Descramble(&payload, 0)
	require.NotEqual(t, original, payload)

	s, ok := circ.FindDataSync(original)
	require.True(t, ok)
	require.Equal(t, 0, s)

	circ.Descramble(&payload, s)
	require.Equal(t, original, payload)
}
