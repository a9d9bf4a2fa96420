// Package gen synthesizes the raw 2352-byte sector patterns the
// integration test scenarios and the encoder CLI's pregap option need:
// silence, a ramp pattern that exercises every interleave column
// independently, and a pregap run of data sectors with a real sync
// header and incrementing timecode (spec §4.10, §6's "-p/--pregap").
package gen

import (
	"retroio/cd/circ"
	"retroio/cd/msf"
)

// PregapSectorCount is the number of leading pregap sectors the -p flag
// emits (spec §6: "emit 153 leading pregap sectors").
const PregapSectorCount = 153

// dataSyncPattern is the Mode 1/2 sector sync field (spec §4.6 step 8,
// §8's E1).
var dataSyncPattern = [12]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// Silence returns an all-zero sector.
func Silence() [circ.SectorPayloadSize]byte {
	return [circ.SectorPayloadSize]byte{}
}

// Ramp returns a sector whose byte at row j (0..97), column k (0..23) is
// j — a pattern that lets every one of the 24 interleave columns be
// checked independently after a decode round-trip (spec §8's E3).
func Ramp() [circ.SectorPayloadSize]byte {
	var s [circ.SectorPayloadSize]byte
	for j := 0; j < circ.LinesPerSector; j++ {
		for k := 0; k < 24; k++ {
			s[j*24+k] = byte(j)
		}
	}
	return s
}

// Pregap builds one pregap sector at index n (0-based): a data-sync
// header at offset 0, followed by the sector's absolute MSF timecode in
// BCD at bytes 12..14, a mode byte, and zeroed user data (spec §8's E1:
// "the first emitted sector body" has data-sync at offset 0 and MSF
// (0,0,0) — the pregap's timecode starts at frame 0 and increments one
// frame per sector).
func Pregap(n int) [circ.SectorPayloadSize]byte {
	var s [circ.SectorPayloadSize]byte
	copy(s[0:12], dataSyncPattern[:])

	t := msf.FromLBA(n)
	bcd := t.Bytes()
	copy(s[12:15], bcd[:])
	s[15] = 0x01 // Mode 1: CIRC/EFM layer does not distinguish Mode 1 from Mode 2

	return s
}
