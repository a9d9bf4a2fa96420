// Package efm implements the Eight-to-Fourteen Modulation line code: the
// forward/reverse 8-to-14 lookup table, the three reserved channel
// patterns (S0, S1, ERASURE), and the merge-bit bit sink that turns a
// stream of Symbols into an NRZ-I channel bit stream.
package efm

import (
	"math/bits"
	"sort"

	"github.com/pkg/errors"
)

// symbolBits is the channel-bit width of one EFM codeword (spec §4.3).
const symbolBits = 14

// minRun and maxRun are the run-length-limited code's d=2/k=10 bounds:
// between any two channel "1" bits there must be at least minRun and at
// most maxRun zero bits (spec §3).
const (
	minRun = 2
	maxRun = 10
)

// S0Pattern, S1Pattern and ErasurePattern are the three reserved 14-bit
// channel patterns outside the byte-indexed table (spec §3). They are
// fixed constants, not entries a table generator is free to choose.
const (
	S0Pattern      uint16 = 0x2004
	S1Pattern      uint16 = 0x1200
	ErasurePattern uint16 = 0b10001000000000
)

// forwardTable[b] is the 14-bit channel pattern for data byte b, bit0
// emitted first (spec §4.3's "LSB-first" convention also governs how the
// table itself is indexed into bit order).
var forwardTable [256]uint16

// reverseTable maps a channel pattern back to its data byte. Built and
// validated as a bijection against forwardTable at init, matching the
// reference implementation's habit of deriving tables once at package
// load rather than maintaining two hand-written arrays that could drift
// apart (§9's design note: "verified at startup against the
// forward/reverse bijection").
var reverseTable map[uint16]byte

func init() {
	forwardTable = generateTable()
	reverseTable = make(map[uint16]byte, 256)
	for b, pattern := range forwardTable {
		if _, exists := reverseTable[pattern]; exists {
			panic(errors.Errorf("efm: forward table is not injective at pattern %#04x", pattern))
		}
		reverseTable[pattern] = byte(b)
	}
	if len(reverseTable) != 256 {
		panic(errors.Errorf("efm: reverse table has %d entries, want 256", len(reverseTable)))
	}
}

// generateTable builds the 256-entry forward lookup table.
//
// The Red Book Annex D table is a fixed historical constant, not
// something a decoder is free to re-derive: a real drive's laser pickup
// only ever sees the channel patterns that table actually assigned, so
// any table that differs from it byte-for-byte cannot read a real disc
// or be read back by one. This package's retrieval pack had its
// original_source copy filtered down to zero code files (see
// _INDEX.md), so the literal byte-exact assignment was not available to
// transcribe. What follows reconstructs a table meeting the real
// table's documented combinatorial contract and orders candidates by
// the same digital-sum-balance criterion the historical table was
// chosen under (DESIGN.md records this as a standard-library-adjacent
// judgment call: without a verified primary source to transcribe, the
// byte-exact constant could not be embedded, so this selects
// deterministically rather than inventing values with no stated basis):
//
//   - every codeword's *internal* gaps (runs of zero bits strictly
//     between two of its own one bits) sit in [minRun, maxRun];
//   - every codeword has at least one one bit, and is none of the
//     reserved S0, S1 and erasure patterns;
//   - every codeword's leading run (zero bits before its first one bit,
//     in emission order) and trailing run (zero bits after its last one
//     bit) are each at most maxRun-1 = 9;
//   - among patterns meeting those constraints, lower weight (fewer one
//     bits) is preferred, since a pattern with fewer transitions
//     contributes less digital-sum variation to the channel; numeric
//     value breaks ties so the result is reproducible. 260 patterns
//     qualify and the first 256 in that order are kept.
//
// The leading/trailing bound is what keeps the bit sink's merge selector
// inside the run-length limits: where a zero trailing bit meets a zero
// leading bit it emits 010, so each side of the merge one bit carries at
// most 9 + 1 = 10 zeros, which is maxRun.
func generateTable() [256]uint16 {
	var candidates []uint16
	for pattern := 0; pattern < (1 << symbolBits); pattern++ {
		if isValidDataPattern(uint16(pattern)) {
			candidates = append(candidates, uint16(pattern))
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		wi, wj := bits.OnesCount16(candidates[i]), bits.OnesCount16(candidates[j])
		if wi != wj {
			return wi < wj
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) < 256 {
		panic(errors.Errorf("efm: only found %d valid codewords, need 256", len(candidates)))
	}

	var table [256]uint16
	copy(table[:], candidates[:256])
	return table
}

// isValidDataPattern reports whether pattern qualifies as a byte-table
// entry under the constraints documented on generateTable.
func isValidDataPattern(pattern uint16) bool {
	var ones []int
	for bit := 0; bit < symbolBits; bit++ {
		if pattern&(1<<uint(bit)) != 0 {
			ones = append(ones, bit)
		}
	}
	if len(ones) < 1 {
		return false
	}
	if pattern == S0Pattern || pattern == S1Pattern || pattern == ErasurePattern {
		return false
	}

	leading := ones[0]
	trailing := symbolBits - 1 - ones[len(ones)-1]
	if leading > maxRun-1 || trailing > maxRun-1 {
		return false
	}

	for i := 1; i < len(ones); i++ {
		gap := ones[i] - ones[i-1] - 1
		if gap < minRun || gap > maxRun {
			return false
		}
	}
	return true
}

// Encode maps a data byte to its 14-bit channel pattern.
func Encode(b byte) uint16 {
	return forwardTable[b]
}

// patternFor resolves any Symbol (byte, S0, S1 or Erasure) to its 14-bit
// channel pattern. Erasure has no real line pattern of its own: it only
// ever appears decoder-side as a report, never encoded onto the channel,
// so encoding it is a programming error.
func patternFor(s Symbol) uint16 {
	if b, ok := s.IsByte(); ok {
		return Encode(b)
	}
	if s.IsS0() {
		return S0Pattern
	}
	if s.IsS1() {
		return S1Pattern
	}
	panic("efm: cannot encode an erasure symbol onto the channel")
}

// Decode maps a 14-bit channel pattern back to a Symbol. Patterns that
// match no known table entry decode to Erasure, per §4.6's "unknown EFM
// pattern -> emit Symbol Erasure, continue" rule.
func Decode(pattern uint16) Symbol {
	switch pattern {
	case S0Pattern:
		return S0
	case S1Pattern:
		return S1
	}
	if b, ok := reverseTable[pattern]; ok {
		return NewByteSymbol(b)
	}
	return Erasure
}
