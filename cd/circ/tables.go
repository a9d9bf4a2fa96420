// Package circ implements the Cross-Interleaved Reed-Solomon Code: the
// encoder that turns raw 2352-byte sectors (plus an optional 96-byte
// subchannel) into EFM symbol lines, and the decoder that reverses the
// process, reporting (not correcting) RS errata along the way.
package circ

// FrameSize is the number of payload bytes in one output line: 12 bytes
// of P1, 4 bytes of C2 parity, 12 bytes of P2, 4 bytes of C1 parity
// (spec §3's frame layout).
const FrameSize = 32

// LinesPerSector is the number of output lines (frames) one input sector
// expands into.
const LinesPerSector = 98

// SectorPayloadSize is the size of a raw input/output sector.
const SectorPayloadSize = 2352

// SubchannelSize is the size of one sector's worth of subchannel bytes.
const SubchannelSize = 96

// pastRingSize is the depth of the encoder's past-line ring (spec §4.5:
// "a ring of 59 past emitted data-lines of 28 bytes each").
const pastRingSize = 59

// futureSectorDepth is the number of raw sectors the encoder must have
// buffered before it can emit lines for the oldest one (spec §4.5: "a
// ring of 3 future sectors").
const futureSectorDepth = 3

// delayedOffset is the smallest line-delay that keeps the digital-data
// sync pattern from splitting across the interleave (spec §9's resolved
// open question; fixed at 2 here for round-trip determinism).
const delayedOffset = 2

// delayedLine[c] and swizzledColumn[c] together locate, for payload
// column c (0..23), which buffered row and which raw sector column to
// read a P1/P2 byte from (spec §3's interleave table).
var delayedLine = [24]int{
	106, 103, 98, 95, 90, 87, 82, 79, 74, 71, 66, 63,
	44, 41, 36, 33, 29, 26, 20, 17, 12, 9, 5, 2,
}

var swizzledColumn = [24]int{
	5, 4, 13, 12, 21, 20, 7, 6, 15, 14, 23, 22,
	9, 8, 17, 16, 1, 0, 11, 10, 19, 18, 3, 2,
}

// delayedC2Data[c] is the companion delay table used when column c
// supplies a C2 codeword input rather than a direct P1/P2 payload byte.
var delayedC2Data = [24]int{
	107, 104, 99, 96, 91, 88, 83, 80, 75, 72, 67, 64,
	43, 40, 35, 32, 27, 24, 19, 16, 11, 8, 3, 0,
}

// delayedC2Locs holds the four C2 parity delays (spec §3: "C2 parity
// delays: [59, 56, 51, 48]").
var delayedC2Locs = [4]int{59, 56, 51, 48}

// decodeC2Delays mirrors delayedC2Data extended to all 28 C1 columns
// (spec §3's decode-side table): the 24 payload delays with the 4 C2
// parity delays (delayedC2Locs) inserted at columns 12..15, in the same
// position C2 parity occupies in a line. c2Gather in deinterleave.go
// indexes this table directly (via mappedColumn) to locate each
// message byte's anchor row, rather than keeping a second copy of the
// same delays split across delayedC2Data/delayedC2Locs.
var decodeC2Delays = [28]int{
	107, 104, 99, 96, 91, 88, 83, 80, 75, 72, 67, 64,
	59, 56, 51, 48,
	43, 40, 35, 32, 27, 24, 19, 16, 11, 8, 3, 0,
}
